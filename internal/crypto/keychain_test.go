package crypto

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"
)

// testKeyChain lowers the iteration count so the suite stays fast.
func testKeyChain() *keyChain {
	return &keyChain{iterations: 16, keyLen: 32}
}

func TestDeriveKey_DeterministicForSameSecret(t *testing.T) {
	kc := testKeyChain()

	k1 := kc.DeriveKey("app-secret")
	k2 := kc.DeriveKey("app-secret")

	if len(k1) != 32 {
		t.Fatalf("key length = %d, want 32", len(k1))
	}
	if !bytes.Equal(k1, k2) {
		t.Fatalf("expected keys to match for the same secret")
	}
}

func TestDeriveKey_DiffersPerSecret(t *testing.T) {
	kc := testKeyChain()

	if bytes.Equal(kc.DeriveKey("secret-a"), kc.DeriveKey("secret-b")) {
		t.Fatalf("expected different secrets to derive different keys")
	}
}

func TestSealOpen_RoundTrip(t *testing.T) {
	kc := testKeyChain()
	key := kc.DeriveKey("app-secret")

	in := map[string]string{"accessToken": "abc.def.ghi"}

	record, err := kc.Seal(key, in)
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	var out map[string]string
	if !kc.Open(key, record, &out) {
		t.Fatalf("Open failed on a record Seal just produced")
	}
	if out["accessToken"] != in["accessToken"] {
		t.Fatalf("round trip mismatch: got %q", out["accessToken"])
	}
}

func TestSeal_FreshNoncePerCall(t *testing.T) {
	kc := testKeyChain()
	key := kc.DeriveKey("app-secret")

	r1, err := kc.Seal(key, "same plaintext")
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}
	r2, err := kc.Seal(key, "same plaintext")
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	if r1 == r2 {
		t.Fatalf("two encryptions of the same plaintext produced identical records")
	}
}

func TestOpen_MalformedRecordsReportAbsent(t *testing.T) {
	kc := testKeyChain()
	key := kc.DeriveKey("app-secret")

	valid, err := kc.Seal(key, "value")
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	// flip a ciphertext byte so the auth tag no longer matches
	blob, _ := base64.StdEncoding.DecodeString(valid)
	blob[len(blob)-1] ^= 0xFF
	tampered := base64.StdEncoding.EncodeToString(blob)

	cases := map[string]string{
		"not base64":     "%%%not-base64%%%",
		"too short":      base64.StdEncoding.EncodeToString([]byte("tiny")),
		"empty":          "",
		"tampered":       tampered,
		"truncated":      valid[:len(valid)/2],
		"space polluted": strings.Repeat(" ", 20),
	}

	for name, record := range cases {
		var out string
		if kc.Open(key, record, &out) {
			t.Fatalf("%s: Open succeeded on malformed record", name)
		}
	}
}

func TestOpen_WrongKeyReportsAbsent(t *testing.T) {
	kc := testKeyChain()

	record, err := kc.Seal(kc.DeriveKey("secret-a"), "value")
	if err != nil {
		t.Fatalf("Seal error: %v", err)
	}

	var out string
	if kc.Open(kc.DeriveKey("secret-b"), record, &out) {
		t.Fatalf("Open succeeded with a key derived from a different secret")
	}
}
