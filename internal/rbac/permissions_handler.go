package rbac

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/etalase/etalase/internal/platform/httpx"
	"github.com/etalase/etalase/internal/shared"
)

// PermissionsHandler exposes the caller's effective permission set so the
// admin frontend can hide controls the role cannot use.
type PermissionsHandler struct {
	service *Service
}

func NewPermissionsHandler(service *Service) *PermissionsHandler {
	return &PermissionsHandler{service: service}
}

func (h *PermissionsHandler) Routes(r chi.Router) {
	r.Get("/", h.listPermissions)
}

func (h *PermissionsHandler) listPermissions(w http.ResponseWriter, r *http.Request) {
	ident := shared.IdentityFromContext(r.Context())
	perms := h.service.EffectivePermissions(ident.Role)
	if perms == nil {
		perms = []string{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"role":        ident.Role,
		"permissions": perms,
	})
}
