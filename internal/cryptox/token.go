package cryptox

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/cropcare/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// SessionKeySize is the length of the HMAC key that signs session markers.
const SessionKeySize = 32

// SessionClaims identify the account a persisted session marker belongs to.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// IssueSessionToken signs an HS256 token whose subject is accountID.
// Session markers do not expire; they live until logout.
func IssueSessionToken(accountID string, key []byte, now time.Time) (string, error) {
	if accountID == "" {
		return "", errors.New("empty account id")
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  accountID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	})
	s, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return s, nil
}

// ParseSessionToken verifies the signature and returns the account id.
// Every failure is reported as common.ErrInvalidToken.
func ParseSessionToken(tokenString string, key []byte) (string, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}
	return claims.Subject, nil
}
