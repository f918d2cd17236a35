package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/atelierhub/atelier-backend/internal/models"
	"github.com/atelierhub/atelier-backend/internal/token"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
	roleKey   contextKey = "role"
)

// Auth validates session tokens and gates admin routes.
type Auth struct {
	Tokens *token.Manager
	DB     *mongo.Database
}

func NewAuth(tokens *token.Manager, db *mongo.Database) *Auth {
	return &Auth{Tokens: tokens, DB: db}
}

// sessionToken pulls the token from the Authorization header or the
// authToken cookie.
func sessionToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if cookie, err := r.Cookie("authToken"); err == nil {
		return cookie.Value
	}
	return ""
}

// RequireAuth rejects requests without a valid session token and stores the
// caller's user id and role in the request context.
func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := sessionToken(r)
		if tokenString == "" {
			writeAuthError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		claims, err := a.Tokens.Parse(tokenString)
		if err != nil {
			writeAuthError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
		ctx = context.WithValue(ctx, roleKey, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin checks the stored account's role, not just the token claim,
// so a demoted admin loses access without waiting for token expiry.
// Use after RequireAuth.
func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		if !ok {
			writeAuthError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		objectID, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			writeAuthError(w, http.StatusForbidden, "Forbidden")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		err = a.DB.Collection("users").FindOne(ctx, bson.M{"_id": objectID}).Decode(&user)
		if err != nil || user.Role != models.RoleAdmin {
			writeAuthError(w, http.StatusForbidden, "Forbidden")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireCronSecret gates the internal scheduled-job endpoint with the
// shared bearer secret.
func RequireCronSecret(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if secret == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(secret)) != 1 {
				writeAuthError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserIDFromContext returns the authenticated caller's user id.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// RoleFromContext returns the role claim carried by the session token.
func RoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleKey).(string)
	return role, ok
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
