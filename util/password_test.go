package util

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	salt, err := GenerateSalt()
	if err != nil {
		t.Fatalf("generate salt: %v", err)
	}

	hash, err := HashPassword("s3cret", salt)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if !strings.HasPrefix(hash, "argon2id$") {
		t.Fatalf("unexpected hash format: %s", hash)
	}
	if strings.Contains(hash, "s3cret") {
		t.Fatal("hash contains the plaintext password")
	}

	match, err := VerifyPassword("s3cret", hash, salt)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !match {
		t.Fatal("correct password rejected")
	}

	match, err = VerifyPassword("wrong", hash, salt)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if match {
		t.Fatal("wrong password accepted")
	}
}

func TestHashDiffersAcrossSalts(t *testing.T) {
	salt1, err := GenerateSalt()
	if err != nil {
		t.Fatalf("generate salt: %v", err)
	}
	salt2, err := GenerateSalt()
	if err != nil {
		t.Fatalf("generate salt: %v", err)
	}
	if salt1 == salt2 {
		t.Fatal("salts are not random")
	}

	hash1, err := HashPassword("s3cret", salt1)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	hash2, err := HashPassword("s3cret", salt2)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash1 == hash2 {
		t.Fatal("same hash for different salts")
	}
}

func TestVerifyRejectsUnknownHashFormat(t *testing.T) {
	if _, err := VerifyPassword("s3cret", "md5$abcdef", "00"); err == nil {
		t.Fatal("expected error for unrecognized hash format")
	}
}
