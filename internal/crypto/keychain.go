// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

// keyDerivationSalt is the fixed application-wide salt for DeriveKey.
// It is not a secret: its only job is to domain-separate this application's
// keys from any other PBKDF2 user of the same secret. Changing it makes every
// previously written record undecryptable.
var keyDerivationSalt = []byte("go-ramp-client.vault.v1")

// keyChain is the private implementation of [KeyChain].
type keyChain struct {
	// PBKDF2 tuning parameters. Stored in the struct so tests can lower the
	// iteration count without touching production defaults.
	iterations int
	keyLen     int
}

// NewKeyChain constructs a [KeyChain] with production parameters:
//   - 100,000 PBKDF2 iterations over SHA-256
//   - 32-byte (256-bit) derived key
func NewKeyChain() KeyChain {
	return &keyChain{
		iterations: 100_000,
		keyLen:     32, // 256 bits
	}
}

// DeriveKey implements [KeyChain].
func (k *keyChain) DeriveKey(secret string) []byte {
	return pbkdf2.Key([]byte(secret), keyDerivationSalt, k.iterations, k.keyLen, sha256.New)
}

// Seal implements [KeyChain]. The output blob layout is
// nonce (12 bytes) ‖ ciphertext, base64 (standard encoding) over the whole
// blob, matching what Open expects.
func (k *keyChain) Seal(key []byte, value any) (string, error) {
	plaintext, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("marshal value: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("create gcm: %w", err)
	}

	// A fresh nonce per call. Reusing a nonce under the same key breaks GCM
	// completely, so this read failing must abort the write.
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)
	blob := append(nonce, ciphertext...)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Open implements [KeyChain]. Every failure path returns false; the caller
// contract is "absent value", not an error.
func (k *keyChain) Open(key []byte, record string, target any) bool {
	blob, err := base64.StdEncoding.DecodeString(record)
	if err != nil {
		return false
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return false
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return false
	}

	nonceSize := gcm.NonceSize()
	if len(blob) < nonceSize {
		return false
	}
	nonce, ciphertext := blob[:nonceSize], blob[nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return false
	}

	return json.Unmarshal(plaintext, target) == nil
}
