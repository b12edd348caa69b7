package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nextlogicai/nextlogic-be/internal/models"
)

// TokenTTL is the absolute lifetime of a session token.
const TokenTTL = 7 * 24 * time.Hour

var jwtKey []byte

// Init sets the process-wide signing key.
func Init(secret string) {
	jwtKey = []byte(secret)
}

// Claims defines the JWT claims structure.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// contextKey is the private type for context values set by this package.
type contextKey string

const userContextKey = contextKey("currentUser")

// GenerateToken creates a signed session token for a user ID, valid for TokenTTL.
func GenerateToken(userID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

// VerifyToken parses a token string and returns the embedded user ID. Any
// malformed, tampered or expired token yields an error; callers must treat
// every failure the same way and never surface the cause.
func VerifyToken(tokenStr string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtKey, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.UserID == "" {
		return "", fmt.Errorf("invalid token")
	}
	return claims.UserID, nil
}

// UserLookup resolves a token's user ID to a live account.
type UserLookup interface {
	GetUserByID(id string) (models.User, error)
}

// Middleware authenticates the request from the session cookie (with an
// Authorization header fallback) and attaches the resolved user to the
// request context. Every failure is a plain 401: the response never
// distinguishes a missing token from an expired or tampered one.
func Middleware(users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var tokenStr string

			if cookie, err := r.Cookie("token"); err == nil {
				tokenStr = cookie.Value
			}

			if tokenStr == "" {
				authHeader := r.Header.Get("Authorization")
				if parts := strings.Split(authHeader, "Bearer "); len(parts) == 2 {
					tokenStr = parts[1]
				}
			}

			if tokenStr == "" {
				unauthenticated(w)
				return
			}

			userID, err := VerifyToken(tokenStr)
			if err != nil {
				unauthenticated(w)
				return
			}

			// The token is self-contained; this lookup confirms the
			// referenced account still exists.
			user, err := users.GetUserByID(userID)
			if err != nil {
				unauthenticated(w)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route on the authenticated user's role. It must run
// after Middleware. A wrong role is a 403, distinct from the 401 used for
// authentication failures.
func RequireRole(role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				unauthenticated(w)
				return
			}
			if user.Role != role {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				fmt.Fprint(w, `{"error":"forbidden"}`)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserFromContext retrieves the authenticated user attached by Middleware.
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userContextKey).(models.User)
	return user, ok
}

// ContextWithUser attaches a user to a context. Used by websocket upgrades
// and tests that bypass the HTTP middleware.
func ContextWithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func unauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	fmt.Fprint(w, `{"error":"not authenticated"}`)
}
