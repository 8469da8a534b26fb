package confsig

import (
	"strings"
	"testing"
)

func TestSignAndVerify(t *testing.T) {
	// Generate a new key pair for testing.
	publicKey, privateKey, err := GenerateKeys()
	if err != nil {
		t.Fatalf("Failed to generate keys: %v", err)
	}

	conf := []byte(`{"ServiceDescription": {"DisplayName": "Pulse"}}`)

	signed, err := Sign(conf, privateKey)
	if err != nil {
		t.Fatalf("Failed to sign config: %v", err)
	}

	valid, err := Verify(signed, publicKey)
	if err != nil {
		t.Fatalf("Failed to verify signature: %v", err)
	}
	if !valid {
		t.Error("Signature should be valid, but it was not.")
	}
}

func TestVerify_FailsWithDifferentPublicKey(t *testing.T) {
	_, privateKey, err := GenerateKeys()
	if err != nil {
		t.Fatalf("Failed to generate keys: %v", err)
	}
	otherPublicKey, _, err := GenerateKeys()
	if err != nil {
		t.Fatalf("Failed to generate keys: %v", err)
	}

	signed, err := Sign([]byte(`{"UptimeReport": {"Schedule": "@hourly"}}`), privateKey)
	if err != nil {
		t.Fatalf("Failed to sign config: %v", err)
	}

	if _, err := Verify(signed, otherPublicKey); err == nil {
		t.Error("Verification should have failed, but it did not.")
	}
}

func TestVerify_FailsOnTamperedConfig(t *testing.T) {
	publicKey, privateKey, err := GenerateKeys()
	if err != nil {
		t.Fatalf("Failed to generate keys: %v", err)
	}

	signed, err := Sign([]byte(`{"ServiceConfig": {"LogFileMaxSizeMb": 10}}`), privateKey)
	if err != nil {
		t.Fatalf("Failed to sign config: %v", err)
	}

	tampered := []byte(strings.Replace(string(signed), "10", "99", 1))
	if _, err := Verify(tampered, publicKey); err == nil {
		t.Error("Verification of tampered config should have failed.")
	}
}

func TestSign_RejectsAlreadySignedConfig(t *testing.T) {
	_, privateKey, err := GenerateKeys()
	if err != nil {
		t.Fatalf("Failed to generate keys: %v", err)
	}

	signed, err := Sign([]byte(`{"a": 1}`), privateKey)
	if err != nil {
		t.Fatalf("Failed to sign config: %v", err)
	}

	if _, err := Sign(signed, privateKey); err == nil {
		t.Error("Signing an already signed config should fail.")
	}
}

func TestSign_RejectsNonObjectPayload(t *testing.T) {
	_, privateKey, err := GenerateKeys()
	if err != nil {
		t.Fatalf("Failed to generate keys: %v", err)
	}

	if _, err := Sign([]byte(`[1, 2, 3]`), privateKey); err == nil {
		t.Error("Signing a non-object payload should fail.")
	}
}
