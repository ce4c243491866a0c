package middleware

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

// AdminUser is the basic auth user name accepted by RequireAdmin.
const AdminUser = "admin"

// RequireAdmin returns middleware that only lets through requests carrying
// basic auth credentials for AdminUser matching the bcrypt passwordHash.
func RequireAdmin(passwordHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, password, ok := r.BasicAuth()
			if ok && user == AdminUser &&
				bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) == nil {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Set("WWW-Authenticate", `Basic realm="choreboard admin"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
		})
	}
}
