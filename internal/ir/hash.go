package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// The version suffix allows a future algorithm migration.
const (
	DomainSignature = "sigprobe/signature/v1"
	DomainDatabase  = "sigprobe/database/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// CanonicalObject is the hashed form of a signature.
func (s ValidatedSignature) CanonicalObject() Object {
	params := make(Array, len(s.Params))
	for i, p := range s.Params {
		params[i] = String(p.String())
	}
	return Object{
		"owner":     String(s.Owner.String()),
		"operation": String(s.Operation),
		"params":    params,
		"returns":   String(s.Returns.String()),
		"static":    Bool(s.Static),
	}
}

// SignatureID computes the content-addressed id of a signature. Two
// signatures share an id exactly when every field matches.
func SignatureID(s ValidatedSignature) (string, error) {
	canonical, err := MarshalCanonical(s.CanonicalObject())
	if err != nil {
		return "", fmt.Errorf("SignatureID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainSignature, canonical), nil
}

// MustSignatureID is like SignatureID but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustSignatureID(s ValidatedSignature) string {
	id, err := SignatureID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// CanonicalDatabase renders the identity-bearing part of db as canonical
// JSON: version, source and the ordered signature list. GeneratedAt is
// excluded so that two runs over an unchanged target hash the same.
func CanonicalDatabase(db *EquationDatabase) ([]byte, error) {
	sigs := make(Array, len(db.Signatures))
	for i, s := range db.Signatures {
		sigs[i] = s.CanonicalObject()
	}
	return MarshalCanonical(Object{
		"version":    String(db.Version),
		"source":     String(db.Source),
		"signatures": sigs,
	})
}

// DatabaseHash computes the content hash of a database.
func DatabaseHash(db *EquationDatabase) (string, error) {
	canonical, err := CanonicalDatabase(db)
	if err != nil {
		return "", fmt.Errorf("DatabaseHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainDatabase, canonical), nil
}
