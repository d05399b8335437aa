/*
Package couplesdk is the Go client for the couple calendar API.

It is organised around two types:

  - SDKClient: public endpoints (sign-in, token refresh, health) and the
    factory for sessions
  - Session: authenticated endpoints with automatic token refresh

Typical use:

	client := couplesdk.NewSDKClient("https://api.example.com")

	session, err := client.SignIn(ctx, "GOOGLE", code)
	if err != nil {
		return err
	}

	calendars, err := session.Calendars(ctx)

When the server answers an authenticated call with the expired-token code
(4002), the Session refreshes its token pair once and retries the call.

Errors returned by the server are *APIError values. They compare equal
(errors.Is) to the catalogue entries such as ErrExpiredToken, so callers can
branch without inspecting codes:

	if errors.Is(err, couplesdk.ErrAlreadyCoupled) { ... }

The same APIError values are used by the server to write its error
responses, which keeps both sides of the wire contract in one place.
*/
package couplesdk
