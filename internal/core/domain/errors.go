package domain

import (
	"errors"
	"fmt"
)

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates the resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the user lacks permission for this action
	ErrForbidden = errors.New("forbidden")

	// ErrTokenExpired indicates the auth token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the auth token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")

	// ErrSessionNotFound indicates the session does not exist
	ErrSessionNotFound = errors.New("session not found")

	// ErrUserNotFound indicates the user could not be located by id or email
	ErrUserNotFound = errors.New("user not found")

	// ErrUpdateFailed indicates a storage write did not take effect
	ErrUpdateFailed = errors.New("update failed")

	// ErrNotConnected indicates the user has no GitHub account connected
	ErrNotConnected = errors.New("github account not connected")

	// ErrMissingOAuthData indicates the OAuth flow cookie is absent or expired
	ErrMissingOAuthData = errors.New("missing oauth flow data")

	// ErrStateMismatch indicates the callback state does not match the stored state
	ErrStateMismatch = errors.New("oauth state mismatch")

	// ErrNoCode indicates the provider callback carried no authorization code
	ErrNoCode = errors.New("no authorization code")

	// ErrTokenExchange indicates the provider rejected the code exchange
	ErrTokenExchange = errors.New("token exchange failed")

	// ErrNoAccessToken indicates the exchange response omitted an access token
	ErrNoAccessToken = errors.New("no access token in response")

	// ErrProfileFetch indicates the provider profile endpoint failed
	ErrProfileFetch = errors.New("profile fetch failed")

	// ErrInvalidProfile indicates the provider profile payload was unusable
	ErrInvalidProfile = errors.New("invalid profile payload")

	// ErrDecryptionFailed indicates a stored token could not be decrypted,
	// either a wrong secret or corrupted ciphertext. Callers treat this as
	// "reconnect required", never as a fatal condition.
	ErrDecryptionFailed = errors.New("decryption failed")
)

// ProviderError is a non-2xx response from the provider's API. It
// keeps the provider's own message so status reporting can surface it
// verbatim, while errors.Is still classifies the failure through the
// sentinel matching its status code.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("provider returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("provider returned %d", e.StatusCode)
}

func (e *ProviderError) Unwrap() error {
	switch e.StatusCode {
	case 401:
		return ErrUnauthorized
	case 403:
		return ErrForbidden
	case 404:
		return ErrNotFound
	}
	return nil
}
