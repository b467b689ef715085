package handlers

import (
	"testing"
	"time"
)

func TestGenerateOTPIsSixDigits(t *testing.T) {
	for i := 0; i < 50; i++ {
		otp, err := generateOTP()
		if err != nil {
			t.Fatalf("generateOTP returned error: %v", err)
		}
		if len(otp) != 6 {
			t.Fatalf("expected 6 digits, got %q", otp)
		}
		for _, r := range otp {
			if r < '0' || r > '9' {
				t.Fatalf("expected only digits, got %q", otp)
			}
		}
	}
}

func TestOTPMatchesInsideWindow(t *testing.T) {
	now := time.Now()
	expires := now.Add(10 * time.Minute)

	if !otpMatches("123456", &expires, "123456", now) {
		t.Fatal("expected match inside validity window")
	}
}

func TestOTPMatchesRejectsExpiredCode(t *testing.T) {
	now := time.Now()
	expires := now.Add(-time.Second)

	if otpMatches("123456", &expires, "123456", now) {
		t.Fatal("expected expired code to be rejected")
	}
}

func TestOTPMatchesRejectsWrongCode(t *testing.T) {
	now := time.Now()
	expires := now.Add(10 * time.Minute)

	if otpMatches("123456", &expires, "654321", now) {
		t.Fatal("expected wrong code to be rejected")
	}
}

func TestOTPMatchesRejectsMissingState(t *testing.T) {
	now := time.Now()
	expires := now.Add(10 * time.Minute)

	if otpMatches("", &expires, "", now) {
		t.Fatal("expected empty stored code to be rejected")
	}
	if otpMatches("123456", nil, "123456", now) {
		t.Fatal("expected missing expiry to be rejected")
	}
}
