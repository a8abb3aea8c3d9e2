// Package redact masks customer-authored text before it reaches operator logs.
package redact

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

// Level controls how much customer content survives redaction.
type Level string

const (
	// LevelNone replaces all content.
	LevelNone Level = "none"
	// LevelHashed hashes recognised identifiers with a salt.
	LevelHashed Level = "hashed"
	// LevelFull keeps content untouched.
	LevelFull Level = "full"
)

const redacted = "[REDACTED]"

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	cardPattern  = regexp.MustCompile(`\b\d{4}[- ]?\d{4}[- ]?\d{4}[- ]?\d{4}\b`)
	// Vietnamese mobile numbers (0xxx / +84xxx) and generic 10 digit groupings.
	phonePattern = regexp.MustCompile(`(?:\+84|\b0)\d{2,3}[-.\s]?\d{3}[-.\s]?\d{3,4}\b|\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`)
	ipv4Pattern  = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)
)

// Redactor sanitizes strings according to its level.
type Redactor struct {
	level Level
	salt  string
}

// New creates a Redactor. Unknown levels behave as LevelHashed.
func New(level string, salt string) *Redactor {
	l := Level(strings.ToLower(strings.TrimSpace(level)))
	switch l {
	case LevelNone, LevelHashed, LevelFull:
	default:
		l = LevelHashed
	}
	return &Redactor{level: l, salt: salt}
}

// Level reports the effective level.
func (r *Redactor) Level() Level {
	return r.level
}

// String sanitizes free text.
func (r *Redactor) String(input string) string {
	if input == "" {
		return ""
	}
	switch r.level {
	case LevelNone:
		return redacted
	case LevelFull:
		return input
	default:
		return r.hashPII(input)
	}
}

func (r *Redactor) hashPII(input string) string {
	// Cards go first so the phone pattern does not eat their digit groups.
	result := cardPattern.ReplaceAllString(input, "[CC:REDACTED]")
	result = emailPattern.ReplaceAllStringFunc(result, func(match string) string {
		return fmt.Sprintf("[EMAIL:%s]", r.hash(match))
	})
	result = ipv4Pattern.ReplaceAllStringFunc(result, func(match string) string {
		return fmt.Sprintf("[IP:%s]", r.hash(match))
	})
	result = phonePattern.ReplaceAllStringFunc(result, func(match string) string {
		return fmt.Sprintf("[PHONE:%s]", r.hash(match))
	})
	return result
}

func (r *Redactor) hash(data string) string {
	sum := sha256.Sum256([]byte(data + r.salt))
	return hex.EncodeToString(sum[:])[:8]
}
