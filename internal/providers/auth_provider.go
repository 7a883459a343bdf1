package providers

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"

	"blogd/internal/structures"
)

type AuthProviderInterface interface {
	Authorized(r *http.Request) bool
	Require(next http.Handler) http.Handler
}

// BasicAuthProvider gates admin routes behind HTTP Basic credentials taken
// from the admin config section. An empty password disables admin access.
type BasicAuthProvider struct {
	username string
	password string
}

func (a *BasicAuthProvider) Authorized(r *http.Request) bool {
	if a.password == "" {
		return false
	}
	user, pass, ok := r.BasicAuth()
	if !ok {
		return false
	}
	return secureCompare(user, a.username) && secureCompare(pass, a.password)
}

func (a *BasicAuthProvider) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.Authorized(r) {
			w.Header().Set("WWW-Authenticate", `Basic realm="Admin Area"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func secureCompare(left, right string) bool {
	l := sha256.Sum256([]byte(left))
	r := sha256.Sum256([]byte(right))
	return subtle.ConstantTimeCompare(l[:], r[:]) == 1
}

func NewAuthProvider(conf *structures.Config) AuthProviderInterface {
	return &BasicAuthProvider{
		username: conf.Admin.Username,
		password: conf.Admin.Password,
	}
}
