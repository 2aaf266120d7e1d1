package auth

import (
	"errors"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

type Access struct {
	Roles []string `json:"roles"`
}

// Claims mirrors the token layout of common identity providers: realm roles,
// per-client roles and a flat roles list are all honoured.
type Claims struct {
	PreferredUsername string            `json:"preferred_username,omitempty"`
	Roles             []string          `json:"roles,omitempty"`
	RealmAccess       *Access           `json:"realm_access,omitempty"`
	ResourceAccess    map[string]Access `json:"resource_access,omitempty"`
	jwt.RegisteredClaims
}

func GenerateToken(secret string, claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	claims.IssuedAt = jwt.NewNumericDate(now)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Verifier validates HS256 bearer tokens and turns them into principals.
type Verifier struct {
	secret         []byte
	resourceID     string
	principalClaim string
}

func NewVerifier(secret, resourceID, principalClaim string) *Verifier {
	if principalClaim == "" {
		principalClaim = "sub"
	}
	return &Verifier{secret: []byte(secret), resourceID: resourceID, principalClaim: principalClaim}
}

// Verify rejects every token when no secret is configured.
func (v *Verifier) Verify(tokenString string) (Principal, error) {
	if len(v.secret) == 0 {
		return Principal{}, ErrInvalidToken
	}
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil {
		return Principal{}, err
	}
	if !token.Valid {
		return Principal{}, ErrInvalidToken
	}

	name, _ := claims[v.principalClaim].(string)
	if name == "" {
		name, _ = claims["sub"].(string)
	}
	if name == "" {
		return Principal{}, ErrInvalidToken
	}
	return Principal{Name: name, Roles: v.roles(claims)}, nil
}

func (v *Verifier) roles(claims jwt.MapClaims) []string {
	var out []string
	add := func(raw any) {
		list, _ := raw.([]any)
		for _, item := range list {
			role, ok := item.(string)
			if !ok {
				continue
			}
			role = normalizeRole(role)
			if role != "" && !slices.Contains(out, role) {
				out = append(out, role)
			}
		}
	}

	if realm, ok := claims["realm_access"].(map[string]any); ok {
		add(realm["roles"])
	}
	if resources, ok := claims["resource_access"].(map[string]any); ok {
		if resource, ok := resources[v.resourceID].(map[string]any); ok {
			add(resource["roles"])
		}
	}
	add(claims["roles"])
	return out
}
