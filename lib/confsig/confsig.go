// Package confsig signs and verifies Pulse JSON config files using Ed25519.
// The detached compact JWS is attached to the config (which must be a JSON
// object) in a top-level "signature" field, computed over the JCS canonical
// form of the rest of the object.
package confsig

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/go-jose/go-jose/v4"
	"github.com/gowebpki/jcs"
)

const signatureField = "signature"

// GenerateKeys creates a new Ed25519 key pair.
// It returns the public key, private key (both base64 encoded), and an error
// if one occurred.
func GenerateKeys() (string, string, error) {
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return "", "", err
	}
	return base64.StdEncoding.EncodeToString(publicKey),
		base64.StdEncoding.EncodeToString(privateKey), nil
}

// Sign takes a JSON config and a base64 encoded private key, and returns the
// config with a "signature" field added.
func Sign(conf []byte, privateKeyB64 string) ([]byte, error) {
	var m map[string]interface{}
	if err := json.Unmarshal(conf, &m); err != nil {
		return nil, fmt.Errorf("config must be a JSON object (e.g {...}): %w", err)
	}
	if _, ok := m[signatureField]; ok {
		return nil, fmt.Errorf("config already contains a '%s' field; maybe it is already signed", signatureField)
	}

	canonical, err := canonicalize(conf)
	if err != nil {
		return nil, err
	}

	privateKey, err := base64.StdEncoding.DecodeString(privateKeyB64)
	if err != nil {
		return nil, err
	}
	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.EdDSA, Key: ed25519.PrivateKey(privateKey)},
		(&jose.SignerOptions{}).WithHeader("kid", "pulse-conf-key-v1"))
	if err != nil {
		return nil, err
	}
	jws, err := signer.Sign(canonical)
	if err != nil {
		return nil, err
	}
	compact, err := jws.DetachedCompactSerialize()
	if err != nil {
		return nil, err
	}

	m[signatureField] = compact
	return json.MarshalIndent(m, "", "    ")
}

// Verify takes a signed JSON config and a base64 encoded public key, and
// returns true if the signature is valid.
func Verify(signedConf []byte, publicKeyB64 string) (bool, error) {
	publicKey, err := base64.StdEncoding.DecodeString(publicKeyB64)
	if err != nil {
		return false, err
	}

	var m map[string]interface{}
	if err := json.Unmarshal(signedConf, &m); err != nil {
		return false, fmt.Errorf("config must be a JSON object: %w", err)
	}
	compact, ok := m[signatureField].(string)
	if !ok {
		return false, fmt.Errorf("invalid signature format: '%s' field missing or not a string", signatureField)
	}
	delete(m, signatureField)

	// Rebuild the config as it was before signing so the canonical forms
	// match.
	unsigned, err := json.Marshal(m)
	if err != nil {
		return false, fmt.Errorf("failed to marshal unsigned config: %w", err)
	}
	canonical, err := canonicalize(unsigned)
	if err != nil {
		return false, err
	}

	object, err := jose.ParseDetached(compact, canonical, []jose.SignatureAlgorithm{jose.EdDSA})
	if err != nil {
		return false, fmt.Errorf("failed to parse detached signature: %w", err)
	}
	if _, err := object.Verify(ed25519.PublicKey(publicKey)); err != nil {
		return false, fmt.Errorf("signature verification failed: %w", err)
	}
	return true, nil
}

func canonicalize(payload []byte) ([]byte, error) {
	canonical, err := jcs.Transform(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize config: %w", err)
	}
	return canonical, nil
}
