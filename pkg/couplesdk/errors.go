package couplesdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/calendar-couple/couple/pkg/httpx"
)

// APIError is the error envelope shared by the server and the SDK. Clients
// should branch on Code; Message is for humans.
type APIError struct {
	// HTTPStatus is the status line of the response.
	HTTPStatus int `json:"-"`

	// Code is the application error code carried in the envelope "status".
	Code int `json:"status"`

	// Message is a short human-readable description.
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("couple api error %d: %s", e.Code, e.Message)
}

// Is matches two API errors carrying the same code and message, so that
// errors decoded by the SDK compare equal to the catalogue entries.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// WriteError writes the error envelope.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteErrorEnvelope(w, e.HTTPStatus, e.Code, e.Message)
}

// Application error codes.
const (
	CodeAccountNotFound       = 1001
	CodeExpiredToken          = 4002
	CodeInvalidToken          = 4003
	CodeBannedAccount         = 4004
	CodeWithdrawnAccount      = 4005
	CodeUnauthorized          = 4010
	CodeBadRequest            = 400
	CodeInvalidInvitationCode = 5001
	CodeSelfInvitation        = 5002
	CodeAlreadyCoupled        = 5003
	CodeNoCouple              = 5006
	CodeNotFound              = 404
	CodeRateLimited           = httpx.RateLimitedCode
	CodeServerError           = 500
)

func newAPIError(status, code int, msg string) *APIError {
	return &APIError{HTTPStatus: status, Code: code, Message: msg}
}

// Authentication failures.
var (
	ErrAccountNotFound    = newAPIError(http.StatusUnauthorized, CodeAccountNotFound, "계정을 찾을 수 없습니다")
	ErrExpiredToken       = newAPIError(http.StatusUnauthorized, CodeExpiredToken, "토큰이 만료되었습니다")
	ErrRefreshExpired     = newAPIError(http.StatusUnauthorized, CodeExpiredToken, "Refresh Token이 만료되었습니다.")
	ErrInvalidToken       = newAPIError(http.StatusUnauthorized, CodeInvalidToken, "유효하지 않은 토큰입니다")
	ErrMalformedToken     = newAPIError(http.StatusUnauthorized, CodeInvalidToken, "잘못된 형식의 토큰입니다")
	ErrUnsupportedToken   = newAPIError(http.StatusUnauthorized, CodeInvalidToken, "지원하지 않는 토큰입니다")
	ErrSignatureInvalid   = newAPIError(http.StatusUnauthorized, CodeInvalidToken, "토큰 서명이 유효하지 않습니다")
	ErrRevokedToken       = newAPIError(http.StatusUnauthorized, CodeInvalidToken, "로그아웃된 토큰입니다")
	ErrBannedAccount      = newAPIError(http.StatusUnauthorized, CodeBannedAccount, "정지된 계정입니다")
	ErrWithdrawnAccount   = newAPIError(http.StatusUnauthorized, CodeWithdrawnAccount, "탈퇴한 계정입니다")
	ErrAccountExpired     = newAPIError(http.StatusUnauthorized, CodeUnauthorized, "계정이 만료되었습니다")
	ErrCredentialsExpired = newAPIError(http.StatusUnauthorized, CodeUnauthorized, "인증 정보가 만료되었습니다")
	ErrUnauthorized       = newAPIError(http.StatusUnauthorized, CodeUnauthorized, "인증이 실패하였습니다")
)

// Request and domain failures.
var (
	ErrInvalidRequest        = newAPIError(http.StatusBadRequest, CodeBadRequest, "잘못된 요청입니다")
	ErrUnknownProvider       = newAPIError(http.StatusBadRequest, CodeBadRequest, "지원하지 않는 로그인 방식입니다")
	ErrInvalidInvitationCode = newAPIError(http.StatusBadRequest, CodeInvalidInvitationCode, "유효하지 않은 초대 코드입니다")
	ErrSelfInvitation        = newAPIError(http.StatusBadRequest, CodeSelfInvitation, "자기 자신을 초대할 수 없습니다")
	ErrAlreadyCoupledInviter = newAPIError(http.StatusBadRequest, CodeAlreadyCoupled, "초대한 사용자가 이미 다른 커플과 연결되어 있습니다")
	ErrAlreadyCoupled        = newAPIError(http.StatusBadRequest, CodeAlreadyCoupled, "이미 다른 커플과 연결되어 있습니다")
	ErrNoCouple              = newAPIError(http.StatusNotFound, CodeNoCouple, "유효하지 않은 커플 요청입니다")
	ErrCalendarNotFound      = newAPIError(http.StatusNotFound, CodeNotFound, "캘린더를 찾을 수 없습니다")
	ErrRateLimited           = newAPIError(http.StatusTooManyRequests, CodeRateLimited, httpx.RateLimitedMessage)
	ErrServerError           = newAPIError(http.StatusInternalServerError, CodeServerError, "서버 오류가 발생했습니다")
)

// parseErrorResponse turns a non-2xx response into an *APIError. Bodies that
// are not an error envelope keep the HTTP status and raw text.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var env httpx.ErrorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Status != 0 {
		return &APIError{
			HTTPStatus: resp.StatusCode,
			Code:       env.Status,
			Message:    env.Message,
		}
	}

	msg := string(body)
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{
		HTTPStatus: resp.StatusCode,
		Code:       resp.StatusCode,
		Message:    msg,
	}
}
