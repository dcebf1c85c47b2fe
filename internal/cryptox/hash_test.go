package cryptox

import "testing"

func TestHashPassword_Deterministic(t *testing.T) {
	h1 := HashPassword("hunter2", "0123456789abcdef")
	h2 := HashPassword("hunter2", "0123456789abcdef")
	if h1 != h2 {
		t.Errorf("expected same digest for same inputs, got %q and %q", h1, h2)
	}

	// snapshot of a known digest
	want := "bGyrNLNpUK0aH39vMmbpGCmsXIMBzVxMNrfZaFOsOB8="
	if h1 != want {
		t.Errorf("HashPassword = %q; want %q", h1, want)
	}
}

func TestHashPassword_SaltChangesDigest(t *testing.T) {
	h1 := HashPassword("hunter2", "0123456789abcdef")
	h2 := HashPassword("hunter2", "fedcba9876543210")
	if h1 == h2 {
		t.Error("expected different digests for different salts, got same")
	}
	if h2 != "xherdIihwEa7hrKfc8GejTaG2NYDa9Sn7cSPb/21AEs=" {
		t.Errorf("unexpected digest %q", h2)
	}
}

func TestHashPassword_EmptyInputs(t *testing.T) {
	// empty password and salt are valid inputs
	want := "47DEQpj8HBSa+/TImW+5JCeuQeRkm5NMpJWZG3hSuFU="
	if got := HashPassword("", ""); got != want {
		t.Errorf("HashPassword(\"\", \"\") = %q; want %q", got, want)
	}
}

func TestRandomString(t *testing.T) {
	s1, err := RandomString(16)
	if err != nil {
		t.Fatalf("RandomString returned error: %v", err)
	}
	s2, err := RandomString(16)
	if err != nil {
		t.Fatalf("RandomString returned error: %v", err)
	}
	if len(s1) != 32 || len(s2) != 32 {
		t.Errorf("expected 32 hex chars, got %d and %d", len(s1), len(s2))
	}
	if s1 == s2 {
		t.Error("expected two random strings to differ")
	}
}
