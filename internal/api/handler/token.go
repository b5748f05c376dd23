package handler

import (
	"errors"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/config"
	"github.com/Manikandankb2403/College-Complaint-Management-System/internal/models"
)

const tokenIssuer = "complaint-portal"

var errInvalidToken = errors.New("invalid token")

// generateToken issues an HS256 login token carrying the actor's identity.
func generateToken(actor models.Actor, secret string) (string, error) {
	claims := jwt.MapClaims{
		"id":   actor.ID,
		"role": string(actor.Role),
		"name": actor.Name,
		"exp":  time.Now().Add(config.TokenTTL).Unix(),
		"iss":  tokenIssuer,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// parseToken validates a login token and resolves the actor behind it.
func parseToken(tokenString, secret string) (models.Actor, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return models.Actor{}, errInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.Actor{}, errInvalidToken
	}
	id, _ := claims["id"].(string)
	role, _ := claims["role"].(string)
	name, _ := claims["name"].(string)
	if id == "" || role == "" {
		return models.Actor{}, errInvalidToken
	}
	return models.Actor{ID: id, Role: models.Role(role), Name: name}, nil
}

// bearerToken extracts the token from an Authorization header value.
func bearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}
