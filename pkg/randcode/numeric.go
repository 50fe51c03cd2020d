package randcode

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

const (
	numericCodeMin = 100000
	numericCodeMax = 999999
)

// GenerateNumericCode draws a 6-digit decimal code uniformly from
// [100000, 999999].
func GenerateNumericCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(numericCodeMax-numericCodeMin+1))
	if err != nil {
		return "", err
	}

	return strconv.FormatInt(numericCodeMin+n.Int64(), 10), nil
}
