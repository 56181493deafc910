// Package uuid wraps google/uuid with the id conventions used by the store:
// time-ordered UUIDv7 primary keys and random v4 tokens for sessions.
package uuid

import (
	googleuuid "github.com/google/uuid"
)

// New generates a UUIDv7 string. Version 7 ids sort by creation time,
// which keeps btree inserts append-only.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		return googleuuid.New().String()
	}
	return id.String()
}

// NewToken returns a random (v4) UUID for opaque, unguessable identifiers.
func NewToken() string {
	return googleuuid.New().String()
}

// Parse validates and normalizes a UUID string.
func Parse(s string) (string, error) {
	parsed, err := googleuuid.Parse(s)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}

// IsValid checks if a string is a valid UUID.
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
