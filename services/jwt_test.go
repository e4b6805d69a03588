package services

import (
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, err := svc.ToJWT(42)
	if err != nil {
		t.Fatal(err)
	}

	userID, err := svc.VerifyJWTToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if userID != 42 {
		t.Errorf("expected user 42, got %d", userID)
	}
}

func TestJWTRejectsBadTokens(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	other := NewJWTService("other-secret", time.Hour)
	expired := NewJWTService("test-secret", -time.Minute)

	foreign, _ := other.ToJWT(1)
	stale, _ := expired.ToJWT(1)

	for name, token := range map[string]string{"foreign": foreign, "expired": stale, "garbage": "abc.def.ghi"} {
		if _, err := svc.VerifyJWTToken(token); err == nil {
			t.Errorf("%s token accepted", name)
		}
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	svc := NewJWTService("s", time.Hour)

	cases := map[string]bool{
		"Bearer abc": true,
		"":           false,
		"Basic abc":  false,
		"Bearer ":    false,
	}
	for header, ok := range cases {
		_, err := svc.ExtractTokenFromHeader(header)
		if (err == nil) != ok {
			t.Errorf("header %q: err=%v", header, err)
		}
	}
}
