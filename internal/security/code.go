package security

import (
	"crypto/rand"
	"crypto/subtle"
	"math/big"
	"strconv"
	"time"
)

// GenerateCode produces a 4-digit numeric one-time code (1000-9999)
// and its expiry timestamp. Codes are not unique across users; the
// expiry is the only defense against replay.
func GenerateCode(ttl time.Duration) (string, time.Time, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", time.Time{}, err
	}

	code := strconv.FormatInt(n.Int64()+1000, 10)

	return code, time.Now().Add(ttl), nil
}

// CodeMatches compares a submitted one-time code against the stored
// one in constant time.
func CodeMatches(submitted, stored string) bool {
	if stored == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(submitted), []byte(stored)) == 1
}
