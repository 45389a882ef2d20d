package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog"
)

const subjectKey = "auth.subject"

var ErrOwnerMismatch = errors.New("userId does not match the authenticated user")

// Middleware rejects requests without a valid HS256 bearer token and stores the
// token subject on the gin context.
func Middleware(secret string) gin.HandlerFunc {
	key := []byte(secret)

	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing bearer token"})
			return
		}

		subject, err := parseSubject(raw, key)
		if err != nil {
			zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg("rejected token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(subjectKey, subject)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func parseSubject(raw string, key []byte) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return key, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("token is not valid")
	}
	if claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}

// Subject returns the authenticated subject, if the middleware ran.
func Subject(c *gin.Context) (string, bool) {
	v, ok := c.Get(subjectKey)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}

// ResolveOwner picks the owner for a request. Without authentication the claimed id
// is trusted as is; with it an empty claim takes the subject and a different claim fails.
func ResolveOwner(c *gin.Context, claimed string) (string, error) {
	subject, ok := Subject(c)
	if !ok {
		return claimed, nil
	}
	if claimed == "" {
		return subject, nil
	}
	if claimed != subject {
		return "", ErrOwnerMismatch
	}
	return claimed, nil
}
