package utils

import "testing"

func TestJWTRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT("user-1", "dev@example.com", "Dev One")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	claims, err := ValidateJWT(token)
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims["id"] != "user-1" || claims["email"] != "dev@example.com" {
		t.Errorf("claims = %v", claims)
	}
}

func TestValidateJWT_RejectsTampering(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateJWT("user-1", "dev@example.com", "Dev One")
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	if _, err := ValidateJWT(token + "x"); err == nil {
		t.Error("tampered token accepted")
	}

	t.Setenv("JWT_SECRET", "another-secret")
	if _, err := ValidateJWT(token); err == nil {
		t.Error("token signed with a different secret accepted")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !ComparePassword("hunter2", hash) {
		t.Error("correct password rejected")
	}
	if ComparePassword("hunter3", hash) {
		t.Error("wrong password accepted")
	}
}
