package auth

import (
	"testing"
	"time"

	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/domain"
)

func TestNewAdapter(t *testing.T) {
	adapter := NewAdapter("test-secret")
	if adapter == nil {
		t.Fatal("expected non-nil adapter")
	}
	if string(adapter.jwtSecret) != "test-secret" {
		t.Error("expected jwt secret to be set")
	}
}

func TestGenerateToken(t *testing.T) {
	adapter := NewAdapter("test-jwt-secret")

	now := time.Now()
	claims := &domain.TokenClaims{
		UserID:    "user-123",
		Email:     "test@example.com",
		SessionID: "session-789",
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(24 * time.Hour).Unix(),
	}

	token, err := adapter.GenerateToken(claims)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if token == "" {
		t.Error("expected non-empty token")
	}

	// JWT tokens have 3 parts separated by dots
	parts := 0
	for _, c := range token {
		if c == '.' {
			parts++
		}
	}
	if parts != 2 {
		t.Errorf("expected JWT with 2 dots (3 parts), got %d dots", parts)
	}
}

func TestParseToken_ValidToken(t *testing.T) {
	adapter := NewAdapter("test-jwt-secret")

	now := time.Now()
	originalClaims := &domain.TokenClaims{
		UserID:    "user-123",
		Email:     "test@example.com",
		SessionID: "session-789",
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(24 * time.Hour).Unix(),
	}

	token, _ := adapter.GenerateToken(originalClaims)

	parsedClaims, err := adapter.ParseToken(token)
	if err != nil {
		t.Fatalf("failed to parse token: %v", err)
	}

	if parsedClaims.UserID != originalClaims.UserID {
		t.Errorf("expected UserID %s, got %s", originalClaims.UserID, parsedClaims.UserID)
	}
	if parsedClaims.Email != originalClaims.Email {
		t.Errorf("expected Email %s, got %s", originalClaims.Email, parsedClaims.Email)
	}
	if parsedClaims.SessionID != originalClaims.SessionID {
		t.Errorf("expected SessionID %s, got %s", originalClaims.SessionID, parsedClaims.SessionID)
	}
}

func TestParseToken_ExpiredToken(t *testing.T) {
	adapter := NewAdapter("test-jwt-secret")

	// Create a token that expired in the past
	pastTime := time.Now().Add(-2 * time.Hour)
	claims := &domain.TokenClaims{
		UserID:    "user-123",
		Email:     "test@example.com",
		SessionID: "session-789",
		IssuedAt:  pastTime.Add(-24 * time.Hour).Unix(),
		ExpiresAt: pastTime.Unix(), // Expired 2 hours ago
	}

	token, _ := adapter.GenerateToken(claims)

	_, err := adapter.ParseToken(token)
	if err == nil {
		t.Error("expected error for expired token")
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	adapter1 := NewAdapter("secret-1")
	adapter2 := NewAdapter("secret-2")

	now := time.Now()
	claims := &domain.TokenClaims{
		UserID:    "user-123",
		Email:     "test@example.com",
		SessionID: "session-789",
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(24 * time.Hour).Unix(),
	}

	// Generate token with adapter1's secret
	token, _ := adapter1.GenerateToken(claims)

	// Try to parse with adapter2's secret
	_, err := adapter2.ParseToken(token)
	if err == nil {
		t.Error("expected error when parsing token with wrong secret")
	}
}

func TestParseToken_MalformedToken(t *testing.T) {
	adapter := NewAdapter("test-secret")

	testCases := []string{
		"",
		"not-a-jwt",
		"only.two.parts.missing",
		"header.payload", // missing signature
	}

	for _, tc := range testCases {
		_, err := adapter.ParseToken(tc)
		if err == nil {
			t.Errorf("expected error for malformed token: %q", tc)
		}
	}
}

func BenchmarkGenerateToken(b *testing.B) {
	adapter := NewAdapter("test-secret")
	now := time.Now()
	claims := &domain.TokenClaims{
		UserID:    "user-123",
		Email:     "test@example.com",
		SessionID: "session-789",
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(24 * time.Hour).Unix(),
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = adapter.GenerateToken(claims)
	}
}

func BenchmarkParseToken(b *testing.B) {
	adapter := NewAdapter("test-secret")
	now := time.Now()
	claims := &domain.TokenClaims{
		UserID:    "user-123",
		Email:     "test@example.com",
		SessionID: "session-789",
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(24 * time.Hour).Unix(),
	}
	token, _ := adapter.GenerateToken(claims)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = adapter.ParseToken(token)
	}
}
