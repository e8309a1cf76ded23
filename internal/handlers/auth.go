package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"orumgs-api/internal/models"
	"orumgs-api/internal/responses"
	"orumgs-api/internal/services"
	"orumgs-api/internal/store"
	"orumgs-api/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

const resetTokenLifetime = time.Hour

// resetRequestedMessage is intentionally the same whether or not the email
// exists, to prevent account enumeration.
const resetRequestedMessage = "If the email exists, a reset link has been sent"

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func Register(users store.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid request format")
			return
		}
		req.Email = normalizeEmail(req.Email)

		if err := utils.Validate.Struct(req); err != nil {
			responses.SendValidationError(w, err)
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to hash password")
			return
		}

		user, err := users.CreateUser(r.Context(), req.Name, req.Email, string(hashedPassword), models.RoleUser)
		if err != nil {
			if errors.Is(err, store.ErrEmailTaken) {
				responses.SendErrorResponse(w, http.StatusBadRequest, "Email already registered")
				return
			}
			log.Printf("register error: %v", err)
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to register user")
			return
		}

		responses.SendSuccessResponse(w, http.StatusCreated, map[string]interface{}{
			"message": "User registered successfully",
			"id":      user.ID,
		})
	}
}

func Login(users store.UserStore, jwtUtil *utils.JWTUtil) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid request format")
			return
		}

		user, err := users.FindByEmail(r.Context(), normalizeEmail(req.Email))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				// Same message as a wrong password.
				responses.SendErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
				return
			}
			log.Printf("login error: %v", err)
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			responses.SendErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		token, err := jwtUtil.GenerateToken(user.ID, user.Role, user.Email)
		if err != nil {
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to generate token")
			return
		}

		responses.SendSuccessResponse(w, http.StatusOK, map[string]interface{}{
			"token":  token,
			"role":   user.Role,
			"userId": user.ID,
		})
	}
}

func ValidateToken(jwtUtil *utils.JWTUtil) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			responses.SendErrorResponse(w, http.StatusUnauthorized, "Authorization header is required")
			return
		}

		claims, err := jwtUtil.ValidateToken(tokenString)
		if err != nil {
			responses.SendErrorResponse(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		responses.SendSuccessResponse(w, http.StatusOK, map[string]interface{}{
			"userId": claims.UserID,
			"role":   claims.Role,
			"email":  claims.Email,
		})
	}
}

func RequestPasswordReset(users store.UserStore, mailer services.Mailer, clientURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.ResetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid request format")
			return
		}
		req.Email = normalizeEmail(req.Email)

		if err := utils.Validate.Struct(req); err != nil {
			responses.SendValidationError(w, err)
			return
		}

		user, err := users.FindByEmail(r.Context(), req.Email)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				log.Printf("reset request error: %v", err)
			}
			responses.SendSuccessResponse(w, http.StatusOK, map[string]string{
				"message": resetRequestedMessage,
			})
			return
		}

		token, err := utils.GenerateResetToken()
		if err != nil {
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to process reset request")
			return
		}

		expires := time.Now().Add(resetTokenLifetime)
		if err := users.SetResetToken(r.Context(), user.ID, utils.HashResetToken(token), expires); err != nil {
			log.Printf("reset request error: %v", err)
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to process reset request")
			return
		}

		resetLink := fmt.Sprintf("%s/reset.html?token=%s&email=%s",
			strings.TrimRight(clientURL, "/"), token, url.QueryEscape(req.Email))
		if err := mailer.SendPasswordResetEmail(req.Email, resetLink); err != nil {
			// A transport failure must not reveal whether the account exists.
			log.Printf("reset email error for %s: %v", req.Email, err)
		}

		responses.SendSuccessResponse(w, http.StatusOK, map[string]string{
			"message": resetRequestedMessage,
		})
	}
}

func ResetPassword(users store.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.ResetPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid request format")
			return
		}
		req.Email = normalizeEmail(req.Email)

		if err := utils.Validate.Struct(req); err != nil {
			responses.SendValidationError(w, err)
			return
		}

		user, err := users.FindByResetToken(r.Context(), req.Email, utils.HashResetToken(req.Token), time.Now())
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid or expired reset token")
				return
			}
			log.Printf("reset password error: %v", err)
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to reset password")
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to hash password")
			return
		}

		if err := users.UpdatePassword(r.Context(), user.ID, string(hashedPassword)); err != nil {
			log.Printf("reset password error: %v", err)
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to reset password")
			return
		}

		responses.SendSuccessResponse(w, http.StatusOK, map[string]string{
			"message": "Password updated. You can now log in.",
		})
	}
}
