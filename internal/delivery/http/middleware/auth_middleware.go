package middleware

import (
	"net/http"

	"delivery-quote-backend/pkg/utils"
)

// SessionValidator checks a settings session token.
type SessionValidator interface {
	ValidateSession(token string) error
}

// SettingsMiddleware admits requests carrying a live settings session token, from
// the Authorization header or the settingsToken cookie.
func SettingsMiddleware(sessions SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := utils.BearerToken(r)
			if tokenString == "" {
				utils.WriteAPIError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Settings are locked")
				return
			}

			if err := sessions.ValidateSession(tokenString); err != nil {
				utils.WriteAPIError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Settings session expired")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
