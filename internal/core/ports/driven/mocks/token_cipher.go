package mocks

import (
	"strings"

	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/domain"
	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/ports/driven"
)

// Ensure MockTokenCipher implements TokenCipher
var _ driven.TokenCipher = (*MockTokenCipher)(nil)

// MockTokenCipher is a reversible fake cipher for testing. Ciphertext
// is the plaintext with a prefix, so tests can assert stored values
// without real crypto. NOT secure - only for testing.
type MockTokenCipher struct {
	// FailDecrypt forces every Decrypt to return ErrDecryptionFailed,
	// simulating a rotated secret or corrupted ciphertext.
	FailDecrypt bool

	// EncryptErr is returned by Encrypt when set
	EncryptErr error
}

// NewMockTokenCipher creates a new MockTokenCipher
func NewMockTokenCipher() *MockTokenCipher {
	return &MockTokenCipher{}
}

func (m *MockTokenCipher) Encrypt(plaintext string) (domain.EncryptedToken, error) {
	if m.EncryptErr != nil {
		return domain.EncryptedToken{}, m.EncryptErr
	}
	return domain.EncryptedToken{
		Hash: "enc:" + plaintext,
		IV:   "iv:" + plaintext,
	}, nil
}

func (m *MockTokenCipher) Decrypt(token domain.EncryptedToken) (string, error) {
	if m.FailDecrypt {
		return "", domain.ErrDecryptionFailed
	}
	if !strings.HasPrefix(token.Hash, "enc:") {
		return "", domain.ErrDecryptionFailed
	}
	return strings.TrimPrefix(token.Hash, "enc:"), nil
}
