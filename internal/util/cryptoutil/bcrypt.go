package cryptoutil

import "golang.org/x/crypto/bcrypt"

// bcryptHash returns the bcrypt hash of token. Costs outside the bcrypt
// range fall back to bcrypt.DefaultCost.
func bcryptHash(token string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(token), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func bcryptCompare(token string, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)) == nil
}
