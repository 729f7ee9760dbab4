package stub

import (
	"net/http"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const tokenLifetime = 24 * time.Hour

// issueToken mints an HS256 bearer token for email.
func (s *Server) issueToken(email string) (string, error) {
	now := time.Now()
	tok, err := jwt.NewBuilder().
		Issuer("triply-stub").
		Subject(email).
		IssuedAt(now).
		Expiration(now.Add(tokenLifetime)).
		Build()
	if err != nil {
		return "", err
	}

	signed, err := jwt.Sign(tok, jwt.WithKey(jwa.HS256, s.secret))
	if err != nil {
		return "", err
	}
	return string(signed), nil
}

// requireToken rejects requests without a valid bearer token with the same
// 401 body shape the real backend uses.
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondError(w, http.StatusUnauthorized, "Missing Authorization header")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondError(w, http.StatusUnauthorized, "Invalid Authorization header format")
			return
		}

		_, err := jwt.Parse([]byte(parts[1]),
			jwt.WithKey(jwa.HS256, s.secret),
			jwt.WithValidate(true),
		)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		next.ServeHTTP(w, r)
	})
}
