// Package sample derives the on-disk names of exported response bodies.
//
// A sample is named after its request, not its content: the key is the URL
// followed by the rendered fetch timestamp, so two fetches of the same URL at
// different times land in different files while identical bodies do not
// deduplicate.
package sample

import (
	"crypto/sha256"
	"encoding/hex"
	"unicode/utf8"

	apperrors "github.com/isre1late/json-samples/internal/errors"
)

// DefaultSuffix is appended to every sample name. Existing consumers of the
// sample directory glob on it, so it is kept although the files hold JSON.
const DefaultSuffix = ".py"

// FileKey returns the bytes hashed to name a sample. It fails for keys that are
// not valid UTF-8 instead of silently replacing invalid sequences.
func FileKey(url, fetchedAt string) ([]byte, error) {
	key := url + fetchedAt
	if !utf8.ValidString(key) {
		return nil, apperrors.Encodingf("sample key for %q is not valid UTF-8", key)
	}
	return []byte(key), nil
}

// Digest returns the lowercase hex SHA-256 of the sample key.
func Digest(url, fetchedAt string) (string, error) {
	key, err := FileKey(url, fetchedAt)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(key)
	return hex.EncodeToString(sum[:]), nil
}

// FileName returns Digest(url, fetchedAt) with suffix appended.
func FileName(url, fetchedAt, suffix string) (string, error) {
	digest, err := Digest(url, fetchedAt)
	if err != nil {
		return "", err
	}
	return digest + suffix, nil
}
