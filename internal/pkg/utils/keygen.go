package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const base36Chars = "abcdefghijklmnopqrstuvwxyz0123456789"

// RandomString returns n characters drawn from [a-z0-9].
func RandomString(n int) (string, error) {
	var sb strings.Builder
	sb.Grow(n)

	max := big.NewInt(int64(len(base36Chars)))
	for range n {
		num, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(base36Chars[num.Int64()])
	}

	return sb.String(), nil
}
