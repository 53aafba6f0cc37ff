package middleware

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	htpasswd "github.com/tg123/go-htpasswd"
)

// AuthResult is the outcome of an AuthenticationProvider.
type AuthResult struct {
	// Allowed lets the request through.
	Allowed bool
	// StatusCode, when non-zero on a denied request, replaces the default 401.
	StatusCode int
	// Message is written as text/plain when it is a string and as JSON otherwise.
	Message any
}

// Allow is the result that lets a request through.
var Allow = AuthResult{Allowed: true}

// Deny is the result that answers 401 Unauthorized.
var Deny = AuthResult{}

// AuthenticationProvider decides whether a request may proceed. A returned
// error answers 500.
type AuthenticationProvider func(r *http.Request) (AuthResult, error)

// Protected guards a handler with provider. A nil provider allows everything.
func Protected(provider AuthenticationProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if provider == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := provider(r)
			if err != nil {
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			if res.Allowed {
				next.ServeHTTP(w, r)
				return
			}
			writeDenied(w, res)
		})
	}
}

func writeDenied(w http.ResponseWriter, res AuthResult) {
	if res.StatusCode == 0 {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, "Unauthorized")
		return
	}

	switch msg := res.Message.(type) {
	case nil:
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(res.StatusCode)
	case string:
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(res.StatusCode)
		_, _ = io.WriteString(w, msg)
	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(res.StatusCode)
		_ = json.NewEncoder(w).Encode(msg)
	}
}

// HtpasswdProvider authenticates Basic credentials against an htpasswd file.
// Supported hashes are those of htpasswd.DefaultSystems.
func HtpasswdProvider(path string) (AuthenticationProvider, error) {
	file, err := htpasswd.New(path, htpasswd.DefaultSystems, nil)
	if err != nil {
		return nil, fmt.Errorf("load htpasswd %s: %w", path, err)
	}
	return basicAuthProvider(file), nil
}

// HtpasswdProviderFromReader is like HtpasswdProvider but reads entries from r.
func HtpasswdProviderFromReader(r io.Reader) (AuthenticationProvider, error) {
	file, err := htpasswd.NewFromReader(r, htpasswd.DefaultSystems, nil)
	if err != nil {
		return nil, fmt.Errorf("load htpasswd: %w", err)
	}
	return basicAuthProvider(file), nil
}

func basicAuthProvider(file *htpasswd.File) AuthenticationProvider {
	return func(r *http.Request) (AuthResult, error) {
		user, pass, ok := r.BasicAuth()
		if !ok || !file.Match(user, pass) {
			return Deny, nil
		}
		return Allow, nil
	}
}
