package redact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewNormalizesLevel(t *testing.T) {
	assert.Equal(t, LevelFull, New(" FULL ", "s").Level())
	assert.Equal(t, LevelNone, New("none", "s").Level())
	assert.Equal(t, LevelHashed, New("", "s").Level())
	assert.Equal(t, LevelHashed, New("verbose", "s").Level())
}

func TestStringNoneAndFull(t *testing.T) {
	input := "Email tôi là lan@example.com"
	assert.Equal(t, "[REDACTED]", New("none", "s").String(input))
	assert.Equal(t, input, New("full", "s").String(input))
	assert.Equal(t, "", New("none", "s").String(""))
}

func TestStringHashed(t *testing.T) {
	r := New("hashed", "autoreply-api")

	tests := []struct {
		name    string
		input   string
		gone    string
		marker  string
		survive string
	}{
		{"email", "liên hệ lan.nguyen@example.com nhé", "lan.nguyen@example.com", "[EMAIL:", "nhé"},
		{"vn mobile", "số của em 0912 345 678 ạ", "0912 345 678", "[PHONE:", "ạ"},
		{"vn mobile intl", "gọi +84912345678", "+84912345678", "[PHONE:", "gọi"},
		{"card", "thẻ 4111 1111 1111 1111", "4111 1111 1111 1111", "[CC:REDACTED]", "thẻ"},
		{"ip", "from 192.168.1.20", "192.168.1.20", "[IP:", "from"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := r.String(tt.input)
			assert.NotContains(t, out, tt.gone)
			assert.Contains(t, out, tt.marker)
			assert.Contains(t, out, tt.survive)
		})
	}
}

func TestHashIsSaltedAndStable(t *testing.T) {
	a := New("hashed", "a")
	b := New("hashed", "b")

	assert.Equal(t, a.String("x@y.io"), a.String("x@y.io"))
	assert.NotEqual(t, a.String("x@y.io"), b.String("x@y.io"))
}
