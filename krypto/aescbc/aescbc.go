// The aescbc package wraps the standard AES-CBC primitive for SKSA section
// encryption. The format predates AEAD: there is no authentication tag, and the
// caller is responsible for block-aligning its buffers before handing them over.
package aescbc

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// Encrypts plaintext with AES-CBC under key/iv. The plaintext must already be
// a multiple of the AES block size; no padding scheme is applied here.
func Encrypt(plaintext, key, iv []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("could not create new cipher: %v", err)
	}
	if len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("invalid IV length %d, want %d", len(iv), aes.BlockSize)
	}
	if len(plaintext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("plaintext length %d is not block aligned", len(plaintext))
	}

	ciphertext := make([]byte, len(plaintext))
	mode := cipher.NewCBCEncrypter(block, iv)
	mode.CryptBlocks(ciphertext, plaintext)

	return ciphertext, nil
}

// Decrypts ciphertext with AES-CBC under key/iv. Same alignment rules as Encrypt.
func Decrypt(ciphertext, key, iv []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("could not create new cipher: %v", err)
	}
	if len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("invalid IV length %d, want %d", len(iv), aes.BlockSize)
	}
	if len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("ciphertext length %d is not block aligned", len(ciphertext))
	}

	plaintext := make([]byte, len(ciphertext))
	mode := cipher.NewCBCDecrypter(block, iv)
	mode.CryptBlocks(plaintext, ciphertext)

	return plaintext, nil
}
