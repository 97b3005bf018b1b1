package errors

import (
	"strings"
	"testing"
)

func TestValidateTreePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:    "valid simple path",
			input:   "main.go",
			wantErr: false,
		},
		{
			name:    "valid nested path",
			input:   "internal/server/server.go",
			wantErr: false,
		},
		{
			name:    "empty path",
			input:   "",
			wantErr: true,
		},
		{
			name:    "absolute path",
			input:   "/etc/passwd",
			wantErr: true,
		},
		{
			name:    "path traversal",
			input:   "../secrets",
			wantErr: true,
		},
		{
			name:    "embedded traversal",
			input:   "pkg/../../../etc",
			wantErr: true,
		},
		{
			name:    "backslash",
			input:   `pkg\city`,
			wantErr: true,
		},
		{
			name:    "null byte",
			input:   "pkg/\x00city",
			wantErr: true,
		},
		{
			name:    "control character",
			input:   "pkg/\x07city",
			wantErr: true,
		},
		{
			name:    "too long",
			input:   strings.Repeat("a/", 300),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTreePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTreePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && GetCode(err) != ErrCodeInvalidPath {
				t.Errorf("ValidateTreePath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateExcludePattern(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:    "simple name",
			input:   "node_modules",
			wantErr: false,
		},
		{
			name:    "glob",
			input:   "*.min.js",
			wantErr: false,
		},
		{
			name:    "nested glob",
			input:   "dist/*.map",
			wantErr: false,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "traversal",
			input:   "../*",
			wantErr: true,
		},
		{
			name:    "control character",
			input:   "bad\x01pattern",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateExcludePattern(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateExcludePattern(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
