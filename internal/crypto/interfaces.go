package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/keychain_mock.go -package=mock

// KeyChain owns all client-side cryptography for the credential vault. It
// knows nothing about the network, storage or users; its only job is to turn
// the application secret into a key and to seal/open small JSON records
// with it.
//
// Scheme:
//
//	key    = DeriveKey(appSecret)            (once per process)
//	record = Seal(key, value)                (before every storage write)
//	ok     = Open(key, record, &value)       (after every storage read)
type KeyChain interface {
	// DeriveKey derives a 256-bit symmetric key from the application secret
	// via PBKDF2-SHA256 with a fixed application-wide salt. The derivation is
	// deliberately slow; callers must run it once and reuse the key.
	DeriveKey(secret string) []byte

	// Seal serializes value to JSON and encrypts it with key using
	// AES-256-GCM. The result is a base64 string of nonce (12 bytes) ||
	// ciphertext, safe to write to local storage. A fresh random nonce is
	// generated on every call.
	Seal(key []byte, value any) (string, error)

	// Open decodes and decrypts a record produced by Seal and unmarshals the
	// plaintext into target (a non-nil pointer, as for json.Unmarshal).
	//
	// Open never returns an error: any failure — bad base64, truncated blob,
	// authentication-tag mismatch, malformed JSON — reports false, which
	// callers must treat as "no stored value". Corrupt storage degrades to
	// absence, never to a crash.
	Open(key []byte, record string, target any) bool
}
