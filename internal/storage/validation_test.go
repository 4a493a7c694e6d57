package storage

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestValidateContext(t *testing.T) {
	tests := []struct {
		ctx     context.Context
		name    string
		wantErr bool
	}{
		{
			name:    "valid context",
			ctx:     context.Background(),
			wantErr: false,
		},
		{
			name:    "nil context",
			ctx:     nil,
			wantErr: true,
		},
		{
			name: "canceled context still valid",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			}(),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateContext(tt.ctx) //nolint:staticcheck // nil context is the case under test
			if (err != nil) != tt.wantErr {
				t.Errorf("validateContext() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateString(t *testing.T) {
	tests := []struct {
		name      string
		str       string
		paramName string
		wantErr   bool
	}{
		{
			name:      "valid string",
			str:       "test",
			paramName: "param",
			wantErr:   false,
		},
		{
			name:      "empty string",
			str:       "",
			paramName: "param",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			str:       "   ",
			paramName: "param",
			wantErr:   true,
		},
		{
			name:      "string with spaces",
			str:       "  test  ",
			paramName: "param",
			wantErr:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateString(tt.str, tt.paramName)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), tt.paramName) {
				t.Errorf("validateString() error should contain param name %s, got %v", tt.paramName, err)
			}
		})
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		ctx     context.Context
		want    error
		name    string
		key     string
		wantErr bool
	}{
		{name: "marketplace code", ctx: context.Background(), key: "MLB123456"},
		{name: "nil context", ctx: nil, key: "MLB1", wantErr: true, want: ErrNilContext},
		{name: "empty", ctx: context.Background(), key: "", wantErr: true, want: ErrEmptyString},
		{name: "dot", ctx: context.Background(), key: "a.b", wantErr: true, want: ErrForbiddenChar},
		{name: "slash", ctx: context.Background(), key: "a/b", wantErr: true, want: ErrForbiddenChar},
		{name: "brackets", ctx: context.Background(), key: "a[0]", wantErr: true, want: ErrForbiddenChar},
		{name: "hash and dollar", ctx: context.Background(), key: "#$", wantErr: true, want: ErrForbiddenChar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateKey(tt.ctx, tt.key) //nolint:staticcheck // nil context is the case under test
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateKey() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("validateKey() error = %v, want %v", err, tt.want)
			}
		})
	}
}
