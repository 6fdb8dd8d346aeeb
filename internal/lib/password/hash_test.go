package password

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestGetHash(t *testing.T) {
	h := NewHasher(MinCost)

	tests := []struct {
		name     string
		password string
	}{
		{name: "regular password", password: "password123"},
		{name: "password with special chars", password: "p@ssw0rd!@#$%^&*()"},
		{name: "short password", password: "short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotHash, err := h.GetHash(tt.password)
			if err != nil {
				t.Fatalf("GetHash() error = %v", err)
			}
			if gotHash == "" {
				t.Fatal("GetHash() returned empty hash")
			}
			if err = h.CompareHash(gotHash, tt.password); err != nil {
				t.Errorf("Generated hash doesn't work with original password: %v", err)
			}
		})
	}
}

func TestNewHasher_EnforcesMinimumCost(t *testing.T) {
	h := NewHasher(4)

	hash, err := h.GetHash("password")
	if err != nil {
		t.Fatalf("GetHash failed: %v", err)
	}

	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("bcrypt.Cost failed: %v", err)
	}
	if cost < MinCost {
		t.Errorf("cost = %d, want at least %d", cost, MinCost)
	}
}

func TestCompareHash(t *testing.T) {
	h := NewHasher(MinCost)

	correctHash, err := h.GetHash("correct_password")
	if err != nil {
		t.Fatalf("Failed to create test hash: %v", err)
	}

	tests := []struct {
		name         string
		hash         string
		password     string
		wantMismatch bool
		wantErr      bool
	}{
		{name: "matching password", hash: correctHash, password: "correct_password"},
		{name: "wrong password", hash: correctHash, password: "wrong_password", wantMismatch: true, wantErr: true},
		{name: "empty password", hash: correctHash, password: "", wantMismatch: true, wantErr: true},
		{name: "garbage hash", hash: "not-a-hash", password: "correct_password", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.CompareHash(tt.hash, tt.password)

			if (err != nil) != tt.wantErr {
				t.Fatalf("CompareHash() error = %v, wantErr %v", err, tt.wantErr)
			}
			if errors.Is(err, ErrMismatch) != tt.wantMismatch {
				t.Errorf("CompareHash() mismatch = %v, want %v", errors.Is(err, ErrMismatch), tt.wantMismatch)
			}
		})
	}
}
