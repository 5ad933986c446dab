package cryptoutil

import (
	"crypto/subtle"
	"fmt"
)

// Supported algorithms for a configured auth token.
const (
	AlgorithmPlaintext = "plaintext"
	AlgorithmArgon2    = "argon2"
	AlgorithmBcrypt    = "bcrypt"
)

// Algorithms lists every supported auth token algorithm.
var Algorithms = []string{AlgorithmPlaintext, AlgorithmArgon2, AlgorithmBcrypt}

// HashToken encodes token for storage with the given algorithm. Plaintext
// tokens are returned unchanged.
//
// The optional bcryptCost is only used by the bcrypt algorithm.
func HashToken(algorithm string, token string, bcryptCost ...int) (string, error) {
	switch algorithm {
	case AlgorithmPlaintext:
		return token, nil
	case AlgorithmArgon2:
		return argon2Hash(token)
	case AlgorithmBcrypt:
		cost := 0
		if len(bcryptCost) > 0 {
			cost = bcryptCost[0]
		}
		return bcryptHash(token, cost)
	}
	return "", fmt.Errorf("unsupported auth token algorithm %q", algorithm)
}

// CompareToken reports whether clientToken matches the stored token for
// the given algorithm. Empty client tokens never match.
func CompareToken(algorithm string, clientToken string, stored string) bool {
	if clientToken == "" {
		return false
	}

	switch algorithm {
	case AlgorithmPlaintext:
		return subtle.ConstantTimeCompare([]byte(clientToken), []byte(stored)) == 1
	case AlgorithmArgon2:
		return argon2Compare(clientToken, stored)
	case AlgorithmBcrypt:
		return bcryptCompare(clientToken, stored)
	}
	return false
}
