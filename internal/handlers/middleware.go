package handlers

import (
	"context"
	"net/http"
	"strings"

	"orumgs-api/internal/responses"
	"orumgs-api/internal/utils"

	"golang.org/x/time/rate"
)

type contextKey string

const userClaimsKey contextKey = "userClaims"

// JWTMiddleware validates bearer tokens and puts the claims in the request
// context.
func JWTMiddleware(jwtUtil *utils.JWTUtil) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				responses.SendErrorResponse(w, http.StatusUnauthorized, "Authorization header is required")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				responses.SendErrorResponse(w, http.StatusUnauthorized, "Bearer token not found")
				return
			}

			claims, err := jwtUtil.ValidateToken(tokenString)
			if err != nil {
				responses.SendErrorResponse(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles restricts a handler to requests whose token carries one of the
// given roles.
func RequireRoles(roles ...string) func(http.HandlerFunc) http.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			claims, ok := r.Context().Value(userClaimsKey).(*utils.Claims)
			if !ok || !allowed[claims.Role] {
				responses.SendErrorResponse(w, http.StatusForbidden, "Access denied: insufficient role")
				return
			}
			next(w, r)
		}
	}
}

func RateLimitMiddleware(limiter *rate.Limiter) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				responses.SendErrorResponse(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
				return
			}
			next(w, r)
		}
	}
}

func claimsFromContext(r *http.Request) (*utils.Claims, bool) {
	claims, ok := r.Context().Value(userClaimsKey).(*utils.Claims)
	return claims, ok
}
