// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package verification

import (
	"crypto/rand"
	"math/big"
)

// CodeLength is the number of digits in a verification code.
const CodeLength = 6

const digits = "0123456789"

// GenerateCode returns a random numeric code of CodeLength digits.
func GenerateCode() (string, error) {
	return generateCode(CodeLength)
}

// generateCode draws each digit uniformly from crypto/rand.
func generateCode(length int) (string, error) {
	base := big.NewInt(int64(len(digits)))
	code := make([]byte, length)

	for i := range code {
		n, err := rand.Int(rand.Reader, base)
		if err != nil {
			return "", err
		}
		code[i] = digits[n.Int64()]
	}

	return string(code), nil
}
