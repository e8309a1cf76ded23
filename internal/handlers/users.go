package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"orumgs-api/internal/models"
	"orumgs-api/internal/responses"
	"orumgs-api/internal/store"

	"github.com/gorilla/mux"
)

func ListUsers(users store.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := users.ListUsers(r.Context())
		if err != nil {
			log.Printf("list users error: %v", err)
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to list users")
			return
		}

		out := make([]models.UserResponse, 0, len(all))
		for _, u := range all {
			out = append(out, models.UserResponse{
				ID:    u.ID,
				Name:  u.Name,
				Email: u.Email,
				Role:  u.Role,
			})
		}
		responses.SendSuccessResponse(w, http.StatusOK, out)
	}
}

func ChangeUserRole(users store.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid user id")
			return
		}

		var req models.ChangeRoleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid request format")
			return
		}

		if !models.ValidRole(req.Role) {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid role")
			return
		}

		if err := users.UpdateRole(r.Context(), id, req.Role); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid user id")
				return
			}
			log.Printf("change role error: %v", err)
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to change role")
			return
		}

		responses.SendSuccessResponse(w, http.StatusOK, map[string]string{
			"message": "Role updated successfully",
		})
	}
}

func DeleteUser(users store.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(mux.Vars(r)["id"])
		if err != nil {
			responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid user id")
			return
		}

		claims, ok := claimsFromContext(r)
		if !ok {
			responses.SendErrorResponse(w, http.StatusUnauthorized, "Invalid user context")
			return
		}
		if claims.UserID == id {
			responses.SendErrorResponse(w, http.StatusBadRequest, "You cannot delete your own account")
			return
		}

		if err := users.DeleteUser(r.Context(), id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				responses.SendErrorResponse(w, http.StatusBadRequest, "Invalid user id")
				return
			}
			log.Printf("delete user error: %v", err)
			responses.SendErrorResponse(w, http.StatusInternalServerError, "Failed to delete user")
			return
		}

		responses.SendSuccessResponse(w, http.StatusOK, map[string]string{
			"message": "User deleted",
		})
	}
}
