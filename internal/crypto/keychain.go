// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

// DEKSize is the length of a generated data-encryption key in bytes.
const DEKSize = 32

// ErrCiphertextTooShort is returned when a blob is shorter than the GCM nonce.
var ErrCiphertextTooShort = errors.New("ciphertext too short")

// keyChainService is the private implementation of [KeyChainService].
type keyChainService struct {
	random io.Reader
}

// NewKeyChainService constructs a [KeyChainService] backed by the OS CSPRNG.
func NewKeyChainService() KeyChainService {
	return &keyChainService{random: rand.Reader}
}

// GenerateDEK implements [KeyChainService]. It reads 32 random bytes from
// the OS CSPRNG and returns them as the data-encryption key.
func (k *keyChainService) GenerateDEK() ([]byte, error) {
	dek := make([]byte, DEKSize)
	if _, err := io.ReadFull(k.random, dek); err != nil {
		return nil, err
	}
	return dek, nil
}

// WrapKey implements [KeyChainService].
func (k *keyChainService) WrapKey(dek, kek []byte) (string, error) {
	blob, err := k.seal(dek, kek)
	if err != nil {
		return "", fmt.Errorf("wrap key: %w", err)
	}
	return base64.StdEncoding.EncodeToString(blob), nil
}

// UnwrapKey implements [KeyChainService]. An error here almost always means
// the master key was rotated without re-wrapping the stored keys.
func (k *keyChainService) UnwrapKey(wrapped string, kek []byte) ([]byte, error) {
	blob, err := base64.StdEncoding.DecodeString(wrapped)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}

	dek, err := k.open(blob, kek)
	if err != nil {
		return nil, fmt.Errorf("unwrap key: %w", err)
	}
	return dek, nil
}

// Encrypt implements [KeyChainService].
func (k *keyChainService) Encrypt(plaintext string, key []byte) (string, error) {
	blob, err := k.seal([]byte(plaintext), key)
	if err != nil {
		return "", fmt.Errorf("encrypt data: %w", err)
	}
	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt implements [KeyChainService].
func (k *keyChainService) Decrypt(encryptedB64 string, key []byte) (string, error) {
	blob, err := base64.StdEncoding.DecodeString(encryptedB64)
	if err != nil {
		return "", fmt.Errorf("decode base64: %w", err)
	}

	plaintext, err := k.open(blob, key)
	if err != nil {
		return "", fmt.Errorf("decrypt data: %w", err)
	}
	return string(plaintext), nil
}

// seal encrypts plaintext with AES-GCM. The random nonce is prepended to
// the ciphertext: blob = nonce || ciphertext.
func (k *keyChainService) seal(plaintext, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(k.random, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func (k *keyChainService) open(blob, key []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(blob) < nonceSize {
		return nil, ErrCiphertextTooShort
	}

	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]
	return gcm.Open(nil, nonce, ciphertext, nil)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}
