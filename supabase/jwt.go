package supabase

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt"
)

// UserIDFromToken returns the subject of a Supabase access token. When secret
// is empty the signature is not checked, matching local development setups
// where the gateway has already verified the token.
func UserIDFromToken(authHeader, secret string) (string, error) {
	if authHeader == "" {
		return "", fmt.Errorf("missing Authorization header")
	}

	jwtString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if jwtString == "" {
		return "", fmt.Errorf("invalid Authorization header")
	}

	var token *jwt.Token
	var err error
	if secret == "" {
		token, _, err = new(jwt.Parser).ParseUnverified(jwtString, jwt.MapClaims{})
	} else {
		token, err = jwt.Parse(jwtString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
	}
	if err != nil {
		return "", fmt.Errorf("invalid JWT: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid JWT claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", fmt.Errorf("missing sub in token")
	}
	return sub, nil
}
