package handlers

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// generateOTP returns a 6-digit one-time code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// otpMatches reports whether a submitted code is the stored one and still
// inside its validity window.
func otpMatches(stored string, expires *time.Time, submitted string, now time.Time) bool {
	if stored == "" || submitted == "" || expires == nil {
		return false
	}
	if stored != submitted {
		return false
	}
	return now.Before(*expires)
}
