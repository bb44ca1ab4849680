package providers

import (
	"crypto/subtle"
	"net/http"
	"weddingsite/internal/structures"
)

type AuthProviderInterface interface {
	Require(next http.Handler) http.Handler
	RequireFunc(next http.HandlerFunc) http.Handler
}

// AuthProvider gates admin routes behind a single static Basic credential.
type AuthProvider struct {
	user     []byte
	password []byte
	logger   Logger
}

func NewAuthProvider(conf *structures.Config, logger Logger) AuthProviderInterface {
	return &AuthProvider{
		user:     []byte(conf.Admin.User),
		password: []byte(conf.Admin.Password),
		logger:   logger,
	}
}

func (a *AuthProvider) authorized(r *http.Request) bool {
	user, pass, ok := r.BasicAuth()
	if !ok {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(user), a.user) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), a.password) == 1
	return userOK && passOK && len(a.password) > 0
}

func (a *AuthProvider) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.authorized(r) {
			a.logger.Warnf(TypeAuth, "Unauthorized %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)
			w.Header().Set("WWW-Authenticate", `Basic realm="Admin"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *AuthProvider) RequireFunc(next http.HandlerFunc) http.Handler {
	return a.Require(next)
}
