package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/huellitas/huellitas-api/internal/crypto"
	"github.com/huellitas/huellitas-api/internal/model"
	"github.com/huellitas/huellitas-api/internal/repository"
)

type contextKey string

const actorKey contextKey = "actor"

// TokenHeader is the custom header the frontend sends the session token in.
const TokenHeader = "x-token"

// Auth returns middleware that validates the x-token header, loads the
// acting user and rejects disabled accounts. The loaded user is stored in
// the request context.
func Auth(secret string, users repository.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(TokenHeader)
			if token == "" {
				writeJSONError(w, http.StatusUnauthorized, "no hay token en la peticion")
				return
			}

			claims, err := crypto.ValidateToken(token, secret)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "token no valido")
				return
			}

			user, err := users.GetByID(r.Context(), claims.UserID)
			if err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					writeJSONError(w, http.StatusUnauthorized, "usuario no existe - token no valido")
					return
				}
				writeJSONError(w, http.StatusInternalServerError, "internal server error")
				return
			}

			if !user.Active {
				writeJSONError(w, http.StatusUnauthorized, "usuario inhabilitado - token no valido")
				return
			}

			ctx := context.WithValue(r.Context(), actorKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorFromContext extracts the authenticated user from the request context.
func ActorFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(actorKey).(*model.User)
	return user, ok
}

// RequireAdmin returns middleware that rejects non-admin actors. Must be
// mounted below Auth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		if !ok {
			writeJSONError(w, http.StatusUnauthorized, "no hay token en la peticion")
			return
		}
		if !actor.IsAdmin() {
			writeJSONError(w, http.StatusForbidden, "se requiere rol de administrador")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
