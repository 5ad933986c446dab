package cryptoutil

import "github.com/matthewhartstonge/argon2"

// argon2Hash returns the encoded argon2id hash of token.
func argon2Hash(token string) (string, error) {
	argon := argon2.DefaultConfig()
	encoded, err := argon.HashEncoded([]byte(token))
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// argon2Compare reports whether token matches an encoded argon2 hash.
// Both argon2i and argon2id encodings are accepted.
func argon2Compare(token string, encoded string) bool {
	ok, err := argon2.VerifyEncoded([]byte(token), []byte(encoded))
	return err == nil && ok
}
