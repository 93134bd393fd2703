package otpcode

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// codeSpan is the number of distinct 6-digit codes: [100000, 999999].
const codeSpan = 900000

// New generates a uniform 6-digit one-time code. The range starts at 100000
// so the code never collapses to fewer digits. crypto/rand keeps codes
// unpredictable to a network attacker.
func New() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", fmt.Errorf("generate otp code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
