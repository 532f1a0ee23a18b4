package security_test

import (
	"testing"

	"github.com/charityhub/charityhub/internal/security"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	plaintexts := []string{"secret", "s", "correct horse battery staple", "päss wörd ✓"}

	for _, p := range plaintexts {
		hash, err := security.HashPassword(p)

		if err != nil {
			t.Fatalf("HashPassword(%q) returned error: %v", p, err)
		}

		if hash == p {
			t.Fatalf("hash must never equal the plaintext")
		}

		if err := security.CheckPassword(hash, p); err != nil {
			t.Fatalf("CheckPassword rejected the original plaintext: %v", err)
		}

		if err := security.CheckPassword(hash, p+"x"); err == nil {
			t.Fatalf("CheckPassword accepted a different plaintext")
		}
	}
}

func TestHashPasswordSaltsPerCall(t *testing.T) {
	first, err := security.HashPassword("secret")
	if err != nil {
		t.Fatalf("first hash failed: %v", err)
	}

	second, err := security.HashPassword("secret")
	if err != nil {
		t.Fatalf("second hash failed: %v", err)
	}

	if first == second {
		t.Fatalf("two hashes of the same plaintext must differ (random salt)")
	}
}

func TestCheckPasswordMalformedHash(t *testing.T) {
	// a malformed stored hash is an internal failure, not a wrong password
	if err := security.CheckPassword("not-a-bcrypt-hash", "secret"); err == nil {
		t.Fatalf("expected an error for a malformed hash")
	}
}
