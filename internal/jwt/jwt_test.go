package jwt

import (
	"testing"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	secret := []byte("test-secret-32-bytes-long-1234567890")

	signed, err := GenerateJWT(JWTParams{UserID: "01K2W3V4X5Y6Z7A8B9C0D1E2F3"}, secret, "1")
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	token, err := ValidateJWT(signed, "1", secret)
	if err != nil {
		t.Fatalf("ValidateJWT() error = %v", err)
	}
	if !token.Valid {
		t.Error("expected token to be valid")
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		t.Fatalf("GetSubject() error = %v", err)
	}
	if subject != "01K2W3V4X5Y6Z7A8B9C0D1E2F3" {
		t.Errorf("expected subject %q, got %q", "01K2W3V4X5Y6Z7A8B9C0D1E2F3", subject)
	}
}

func TestValidateJWT_Errors(t *testing.T) {
	secret := []byte("test-secret-32-bytes-long-1234567890")

	signed, err := GenerateJWT(JWTParams{UserID: "user-1"}, secret, "2")
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	tests := []struct {
		name    string
		token   string
		version string
		secret  []byte
	}{
		{
			name:    "wrong secret",
			token:   signed,
			version: "2",
			secret:  []byte("another-secret-32-bytes-long-123456"),
		},
		{
			name:    "wrong key version",
			token:   signed,
			version: "1",
			secret:  secret,
		},
		{
			name:    "malformed token",
			token:   "not-a-jwt",
			version: "2",
			secret:  secret,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ValidateJWT(tt.token, tt.version, tt.secret); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
