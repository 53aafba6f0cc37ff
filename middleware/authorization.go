package middleware

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

// AuthType names the scheme of an Authorization header.
type AuthType string

const (
	AuthBasic  AuthType = "Basic"
	AuthBearer AuthType = "Bearer"
)

// Authorization holds credentials decoded from the Authorization header.
type Authorization struct {
	Type   AuthType
	Basic  *BasicCredentials
	Bearer *BearerToken
	// JWT is set when the bearer token decodes as a JSON Web Token.
	// The signature is not verified.
	JWT *JWT
}

type BasicCredentials struct {
	Username string
	Password string
}

type BearerToken struct {
	Token string
}

// JWT is the decoded, unverified content of a bearer token.
type JWT struct {
	Header    map[string]any
	Claims    jwt.MapClaims
	Signature string
}

type authorizationContextKey struct{}

// AuthorizationConfig configures the authorization decoding middleware.
type AuthorizationConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(r *http.Request) bool
}

// AuthorizationDecoder decodes Basic and Bearer credentials into the request context.
// Malformed headers are ignored; the request always continues.
func AuthorizationDecoder() func(http.Handler) http.Handler {
	return AuthorizationWithConfig(AuthorizationConfig{})
}

// AuthorizationWithConfig creates an authorization decoder with custom configuration.
func AuthorizationWithConfig(cfg AuthorizationConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			if auth, ok := ParseAuthorization(r.Header.Get("Authorization")); ok {
				r = r.WithContext(context.WithValue(r.Context(), authorizationContextKey{}, auth))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetAuthorization retrieves decoded credentials from the request context.
func GetAuthorization(ctx context.Context) (*Authorization, bool) {
	auth, ok := ctx.Value(authorizationContextKey{}).(*Authorization)
	return auth, ok
}

// ParseAuthorization decodes an Authorization header value.
func ParseAuthorization(header string) (*Authorization, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok {
		return nil, false
	}
	token = strings.TrimSpace(token)

	switch strings.ToLower(scheme) {
	case "basic":
		raw, err := base64.StdEncoding.DecodeString(token)
		if err != nil {
			return nil, false
		}
		username, password, _ := strings.Cut(string(raw), ":")
		if username == "" || password == "" {
			return nil, false
		}
		return &Authorization{
			Type:  AuthBasic,
			Basic: &BasicCredentials{Username: username, Password: password},
		}, true

	case "bearer":
		if token == "" {
			return nil, false
		}
		return &Authorization{
			Type:   AuthBearer,
			Bearer: &BearerToken{Token: token},
			JWT:    decodeJWT(token),
		}, true
	}

	return nil, false
}

// decodeJWT returns nil unless the token has three segments with a decodable
// header and payload.
func decodeJWT(token string) *JWT {
	if strings.Count(token, ".") != 2 {
		return nil
	}

	claims := jwt.MapClaims{}
	parsed, parts, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		// An unknown signing method still yields decoded segments.
		var verr *jwt.ValidationError
		if !errors.As(err, &verr) || verr.Errors != jwt.ValidationErrorUnverifiable || parsed == nil {
			return nil
		}
	}
	if len(parts) != 3 || parts[2] == "" {
		return nil
	}

	return &JWT{
		Header:    parsed.Header,
		Claims:    claims,
		Signature: parts[2],
	}
}
