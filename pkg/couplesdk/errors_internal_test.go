package couplesdk

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorResponse(t *testing.T) {
	t.Parallel()

	t.Run("success is nil", func(t *testing.T) {
		require.NoError(t, parseErrorResponse(&http.Response{StatusCode: http.StatusOK}, nil))
	})

	t.Run("envelope", func(t *testing.T) {
		err := parseErrorResponse(
			&http.Response{StatusCode: http.StatusBadRequest},
			[]byte(`{"message":"이미 다른 커플과 연결되어 있습니다","status":5003}`),
		)
		require.ErrorIs(t, err, ErrAlreadyCoupled)
		require.NotErrorIs(t, err, ErrAlreadyCoupledInviter)
	})

	t.Run("plain body", func(t *testing.T) {
		err := parseErrorResponse(&http.Response{StatusCode: http.StatusBadGateway}, []byte("upstream down"))

		apiErr, ok := err.(*APIError)
		require.True(t, ok)
		require.Equal(t, http.StatusBadGateway, apiErr.Code)
		require.Equal(t, "upstream down", apiErr.Message)
	})

	t.Run("empty body", func(t *testing.T) {
		err := parseErrorResponse(&http.Response{StatusCode: http.StatusServiceUnavailable}, nil)
		require.Contains(t, err.Error(), http.StatusText(http.StatusServiceUnavailable))
	})
}
