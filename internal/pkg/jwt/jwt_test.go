package jwt

import (
	"errors"
	"testing"
)

const testSecret = "test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(7, "siti", testSecret, 5)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := ValidateAccessToken(token, testSecret)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if claims.AdminID != 7 || claims.Username != "siti" {
		t.Errorf("claims: got (%d, %q), want (7, \"siti\")", claims.AdminID, claims.Username)
	}
	if claims.Subject != "7" {
		t.Errorf("subject: got %q, want \"7\"", claims.Subject)
	}
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	token, _ := GenerateAccessToken(1, "admin", testSecret, 5)
	if _, err := ValidateAccessToken(token, "other"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("got %v, want ErrTokenInvalid", err)
	}
}

func TestValidateAccessToken_Expired(t *testing.T) {
	token, _ := GenerateAccessToken(1, "admin", testSecret, -1)
	if _, err := ValidateAccessToken(token, testSecret); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("got %v, want ErrTokenExpired", err)
	}
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	if _, err := ValidateAccessToken("not-a-token", testSecret); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("got %v, want ErrTokenInvalid", err)
	}
}
