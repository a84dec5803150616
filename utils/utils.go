package utils

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateOTP generates a 6-digit OTP
func GenerateOTP() string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	otp := ""
	for i := 0; i < 6; i++ {
		otp += fmt.Sprintf("%d", rng.Intn(10))
	}
	return otp
}

// RoundPercentage computes round(score/maxScore*100). A zero maxScore means
// the record stays ungraded, so the caller gets nil instead of a division.
func RoundPercentage(score, maxScore float64) *float64 {
	if maxScore <= 0 {
		return nil
	}
	p := score / maxScore * 100
	rounded := float64(int(p*100+0.5)) / 100
	return &rounded
}
