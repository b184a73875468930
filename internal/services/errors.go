package services

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNotFound covers both nonexistent ids and records owned by someone
	// else; callers must not be able to tell the two apart.
	ErrNotFound = errors.New("record not found")

	ErrEmailTaken         = errors.New("User with this email already exists")
	ErrInvalidCredentials = errors.New("Invalid email or password")
)

// ValidationError lists every violated field of a request.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
