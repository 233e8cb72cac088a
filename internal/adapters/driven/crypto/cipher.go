package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/domain"
	"github.com/Deepak-png981/Review-Raccoon-App/internal/core/ports/driven"
)

// TokenCipher handles AES-256-CBC encryption of provider tokens.
// Ciphertext and IV are stored as separate hex strings so they map
// onto the paired database columns.
//
// The key is derived by hashing the configured secret with SHA-256,
// which accepts a passphrase of any length and always yields the
// 32 bytes AES-256 needs. The same secret must stay in service for
// stored tokens to remain recoverable.
type TokenCipher struct {
	key [32]byte
}

var _ driven.TokenCipher = (*TokenCipher)(nil)

// NewTokenCipher derives the AES key from the given secret.
func NewTokenCipher(secret string) (*TokenCipher, error) {
	if secret == "" {
		return nil, fmt.Errorf("encryption secret must not be empty")
	}
	return &TokenCipher{key: sha256.Sum256([]byte(secret))}, nil
}

// Encrypt seals a plaintext token under a fresh random IV.
func (c *TokenCipher) Encrypt(plaintext string) (domain.EncryptedToken, error) {
	block, err := aes.NewCipher(c.key[:])
	if err != nil {
		return domain.EncryptedToken{}, fmt.Errorf("create AES cipher: %w", err)
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return domain.EncryptedToken{}, fmt.Errorf("generate IV: %w", err)
	}

	padded := pad([]byte(plaintext), aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)

	return domain.EncryptedToken{
		Hash: hex.EncodeToString(ciphertext),
		IV:   hex.EncodeToString(iv),
	}, nil
}

// Decrypt opens a stored token. Any structural defect in the stored
// pair, or a key mismatch detectable through the padding, comes back
// as domain.ErrDecryptionFailed.
func (c *TokenCipher) Decrypt(token domain.EncryptedToken) (string, error) {
	iv, err := hex.DecodeString(token.IV)
	if err != nil || len(iv) != aes.BlockSize {
		return "", domain.ErrDecryptionFailed
	}

	ciphertext, err := hex.DecodeString(token.Hash)
	if err != nil || len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", domain.ErrDecryptionFailed
	}

	block, err := aes.NewCipher(c.key[:])
	if err != nil {
		return "", fmt.Errorf("create AES cipher: %w", err)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, err := unpad(plaintext, aes.BlockSize)
	if err != nil {
		return "", domain.ErrDecryptionFailed
	}
	return string(unpadded), nil
}

// pad applies PKCS#7 padding. A plaintext already aligned to the block
// size gains a full block of padding so unpad stays unambiguous.
func pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, fmt.Errorf("invalid padded length %d", len(data))
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, fmt.Errorf("invalid padding byte %d", n)
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("inconsistent padding")
		}
	}
	return data[:len(data)-n], nil
}
