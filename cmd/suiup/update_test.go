package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewerVersion(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		candidate string
		want      bool
	}{
		{"strictly newer", "1.40.1", "1.41.0", true},
		{"same version", "1.40.1", "1.40.1", false},
		{"older", "1.41.0", "1.40.1", false},
		{"patch downgrade", "1.40.2", "1.40.1", false},
		{"unparseable falls back to inequality", "weekly-7", "weekly-8", true},
		{"unparseable equal", "weekly-7", "weekly-7", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, newerVersion(tt.current, tt.candidate))
		})
	}
}
