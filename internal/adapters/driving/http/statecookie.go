package http

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/crypto/nacl/secretbox"

	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/domain"
)

const (
	// connectCookieName carries the sealed OAuthFlow across the GitHub
	// connect redirect. The name is part of the frontend contract.
	connectCookieName = "github_oauth_data"

	// signinCookieName carries the sealed sign-in state
	signinCookieName = "rr_signin_state"

	// stateCookieMaxAge bounds how long a started OAuth flow stays
	// redeemable
	stateCookieMaxAge = 600 // seconds
)

// cookieSealer seals small JSON payloads into tamper-proof cookie
// values. The browser stores the flow state, so it must be both
// unreadable and unforgeable.
type cookieSealer struct {
	key [32]byte
}

// newCookieSealer derives the sealing key from the configured secret
func newCookieSealer(secret string) (*cookieSealer, error) {
	if secret == "" {
		return nil, errors.New("cookie secret must not be empty")
	}
	return &cookieSealer{key: sha256.Sum256([]byte(secret))}, nil
}

func (c *cookieSealer) seal(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}

	var nonce [24]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", err
	}

	sealed := secretbox.Seal(nonce[:], data, &nonce, &c.key)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (c *cookieSealer) open(value string, v any) error {
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return domain.ErrMissingOAuthData
	}
	if len(raw) < 24 {
		return domain.ErrMissingOAuthData
	}

	var nonce [24]byte
	copy(nonce[:], raw[:24])
	data, ok := secretbox.Open(nil, raw[24:], &nonce, &c.key)
	if !ok {
		return domain.ErrMissingOAuthData
	}
	return json.Unmarshal(data, v)
}

// signinState is the payload sealed into the sign-in cookie
type signinState struct {
	State    string          `json:"state"`
	Provider domain.Provider `json:"provider"`
}

func (s *Server) setFlowCookie(w http.ResponseWriter, name string, payload any) error {
	value, err := s.sealer.seal(payload)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   stateCookieMaxAge,
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *Server) readFlowCookie(r *http.Request, name string, payload any) error {
	cookie, err := r.Cookie(name)
	if err != nil || cookie.Value == "" {
		return domain.ErrMissingOAuthData
	}
	return s.sealer.open(cookie.Value, payload)
}

func (s *Server) clearFlowCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
