package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ExtractTokenFromRequest reads the raw token from the Authorization
// header, falling back to the named session cookie when the header is
// absent.
func ExtractTokenFromRequest(r *http.Request, sessionCookie string) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		// Bearer token format: "Bearer {token}"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", errors.New("authorization header format must be 'Bearer {token}'")
		}
		return parts[1], nil
	}

	if sessionCookie != "" {
		if cookie, err := r.Cookie(sessionCookie); err == nil && cookie.Value != "" {
			return cookie.Value, nil
		}
	}

	return "", errors.New("no credentials in request")
}

// ExtractUserIDFromJWT pulls the 'sub' claim out of a JWT without
// verifying the signature. Verification happens in the middleware; this
// is for log enrichment only.
func ExtractUserIDFromJWT(tokenString string) (string, error) {
	if tokenString == "" {
		return "", errors.New("empty token")
	}

	token, _, err := new(jwt.Parser).ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("subject claim not found in token")
	}

	return sub, nil
}
