package domain

// EncryptedToken is a ciphertext/IV pair as stored at rest. Both fields
// are hex encoded; they are only ever written or cleared together.
type EncryptedToken struct {
	Hash string `json:"-"`
	IV   string `json:"-"`
}

// IsZero reports whether no token material is present.
func (t EncryptedToken) IsZero() bool {
	return t.Hash == "" && t.IV == ""
}

// OAuthFlow is the short-lived CSRF state bound to one connect attempt.
// It travels to the browser sealed inside a cookie and comes back on
// the provider callback.
type OAuthFlow struct {
	State  string `json:"state"`
	UserID string `json:"userId"`
	// Email allows a degraded user lookup when the ID cannot be
	// resolved on the callback
	Email string `json:"email,omitempty"`
}

// TokenExchange is the provider's response to a code or refresh grant.
type TokenExchange struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	Scope        string `json:"scope,omitempty"`
	ExpiresIn    int64  `json:"expires_in,omitempty"`
	Error        string `json:"error,omitempty"`
	ErrorDesc    string `json:"error_description,omitempty"`
}

// ConnectionStatus reports whether the user's GitHub link is live.
// Username is a pointer so a disconnected status serialises the field
// as null rather than an empty string.
type ConnectionStatus struct {
	IsConnected bool    `json:"isConnected"`
	Username    *string `json:"username"`
	TokenValid  bool    `json:"tokenValid"`
	TokenError  string  `json:"tokenError,omitempty"`
}

// Callback error codes surfaced to the frontend via redirect query
// params. The frontend maps these to user-facing messages, so the
// strings are part of the contract.
const (
	CallbackErrNoCode        = "no_code"
	CallbackErrNoUserID      = "no_user_id"
	CallbackErrStateMismatch = "state_mismatch"
	CallbackErrTokenExchange = "token_exchange_failed"
	CallbackErrNoAccessToken = "no_access_token"
	CallbackErrGitHubAPI     = "github_api_error"
	CallbackErrInvalidUser   = "invalid_github_user"
	CallbackErrUserNotFound  = "user_not_found"
	CallbackErrUpdateFailed  = "update_failed"
	CallbackErrServer        = "server_error"
)
