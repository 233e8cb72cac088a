package driven

import "github.com/Deepak-png981/Review-Raccoon-App/internal/core/domain"

// TokenCipher encrypts provider tokens for storage at rest.
type TokenCipher interface {
	// Encrypt seals a plaintext token. Each call produces a fresh IV,
	// so two encryptions of the same token never match.
	Encrypt(plaintext string) (domain.EncryptedToken, error)

	// Decrypt opens a stored token. Returns domain.ErrDecryptionFailed
	// when the ciphertext cannot be recovered with the current secret.
	Decrypt(token domain.EncryptedToken) (string, error)
}
