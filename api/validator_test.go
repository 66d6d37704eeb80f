package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantOK   bool
	}{
		{"valid", "alice", true},
		{"minimum length", "abc", true},
		{"maximum length", strings.Repeat("a", 50), true},
		{"empty", "", false},
		{"too short", "ab", false},
		{"too long", strings.Repeat("a", 51), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newValidator()
			v.checkUsername(tt.username)
			assert.Equal(t, tt.wantOK, !v.hasErrors())
		})
	}
}

func TestCheckPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantOK   bool
	}{
		{"valid", "secret1", true},
		{"minimum length", "secret", true},
		{"maximum length", strings.Repeat("p", 72), true},
		{"empty", "", false},
		{"too short", "five5", false},
		{"too long", strings.Repeat("p", 73), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newValidator()
			v.checkPassword(tt.password)
			assert.Equal(t, tt.wantOK, !v.hasErrors())
		})
	}
}

func TestCheckItemName(t *testing.T) {
	v := newValidator()
	v.checkItemName("buy milk")
	assert.False(t, v.hasErrors())

	v = newValidator()
	v.checkItemName("")
	assert.True(t, v.hasErrors())
}

func TestValidatorFirstErrorWins(t *testing.T) {
	v := newValidator()
	v.checkCond(false, "name", "first")
	v.checkCond(false, "name", "second")
	assert.Contains(t, v.toError().Error(), "first")
	assert.NotContains(t, v.toError().Error(), "second")
}
