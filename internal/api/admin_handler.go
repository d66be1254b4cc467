package api

import (
	"net/http"

	"github.com/recallhq/flashcard-api/internal/api/shared"
	"github.com/recallhq/flashcard-api/internal/service"
)

// AdminHandler handles user administration API requests. The service layer
// enforces the admin role on every operation; the handler only shapes
// requests and responses.
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new AdminHandler with the given dependencies.
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// ListUsers handles GET /admin/users.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	users, err := h.adminService.ListUsers(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, users)
}

// GetUser handles GET /admin/users/{id}, returning the user together with
// their resource counts.
func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	actorID, targetID, ok := handleUserIDAndPathUUID(w, r, "id", nil)
	if !ok {
		return
	}

	result, err := h.adminService.GetUserWithStats(r.Context(), actorID, targetID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, UserStatsResponse{
		UserID:      result.User.ID,
		Email:       result.User.Email,
		FirstName:   result.User.FirstName,
		LastName:    result.User.LastName,
		Role:        string(result.User.Role),
		CreatedAt:   result.User.CreatedAt,
		Collections: result.Stats.Collections,
		Cards:       result.Stats.Cards,
		Reviews:     result.Stats.Reviews,
	})
}

// DeleteUser handles DELETE /admin/users/{id}.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actorID, targetID, ok := handleUserIDAndPathUUID(w, r, "id", nil)
	if !ok {
		return
	}

	if err := h.adminService.DeleteUser(r.Context(), actorID, targetID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
