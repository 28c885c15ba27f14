package models

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT issued to an operator of the control API.
//
// It embeds [jwt.Token] for signing and parsing and [jwt.RegisteredClaims]
// for standard claim access. Operator is a cached copy of the "sub" claim.
type Token struct {
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// Operator is the subject the token was issued to.
	Operator string `json:"-"`
}

// GetOperator extracts the operator name from the "sub" claim.
func (t *Token) GetOperator() (string, error) {
	subject, err := t.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error extracting operator from token: %w", err)
	}
	if subject == "" {
		return "", fmt.Errorf("error extracting operator from token: empty subject")
	}

	return subject, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
