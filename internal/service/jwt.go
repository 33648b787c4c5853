package service

import (
	"errors"
	"time"

	"lingua_webapp/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

var (
	sessionSecret  []byte
	identitySecret []byte
)

// InitJWT sets the signing secrets. The session secret signs tokens this
// service issues; the identity secret verifies assertions from the external
// identity provider.
func InitJWT(session, identity string) {
	if session == "" {
		panic("JWT session secret is not set")
	}
	sessionSecret = []byte(session)
	identitySecret = []byte(identity)
	if identity == "" {
		identitySecret = sessionSecret
	}
}

// GenerateSession issues a 24h session token carrying the user id and role.
func GenerateSession(userID int64, role string) (string, error) {
	now := time.Now().Unix()
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
		"iat":     now,
		"nbf":     now,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(sessionSecret)
}

// ParseSession validates a session token and returns the user id and role.
func ParseSession(tokenString string) (int64, string, error) {
	claims, err := parseHMAC(tokenString, sessionSecret)
	if err != nil {
		return 0, "", err
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, "", errors.New("user_id not found")
	}

	role, _ := claims["role"].(string)
	if role == "" {
		role = domain.RoleFree
	}

	return int64(userID), role, nil
}

// IdentityClaims is the verified payload of an identity-provider assertion.
// The subject is the provider's opaque user id; it is trusted as-is.
type IdentityClaims struct {
	ClerkID  string
	Username string
	Name     string
	Country  string
	Role     string
}

// ParseIdentityAssertion verifies an assertion issued by the identity
// provider and extracts the cached-profile claims.
func ParseIdentityAssertion(tokenString string) (*IdentityClaims, error) {
	claims, err := parseHMAC(tokenString, identitySecret)
	if err != nil {
		return nil, err
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, errors.New("sub not found")
	}

	ic := &IdentityClaims{ClerkID: sub}
	ic.Username, _ = claims["username"].(string)
	ic.Name, _ = claims["name"].(string)
	ic.Country, _ = claims["country"].(string)
	ic.Role, _ = claims["role"].(string)
	if ic.Role == "" {
		ic.Role = domain.RoleFree
	}

	return ic, nil
}

func parseHMAC(tokenString string, secret []byte) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})

	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	now := time.Now().Unix()
	if exp, ok := claims["exp"].(float64); ok {
		if int64(exp) < now {
			return nil, errors.New("token expired")
		}
	}
	if nbf, ok := claims["nbf"].(float64); ok {
		if int64(nbf) > now {
			return nil, errors.New("token not valid yet")
		}
	}

	return claims, nil
}
