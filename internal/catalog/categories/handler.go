package categories

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/etalase/etalase/internal/platform/httpx"
	"github.com/etalase/etalase/internal/shared"
)

type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
	}
}

// Routes mounts category administration, including the field configuration
// sub-resource.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	r.Post("/{id}/fields", h.AddField)
	r.Post("/{id}/fields/all", h.AddAllMissing)
	r.Put("/{id}/fields/order", h.Reorder)
	r.Put("/{id}/fields/{entryID}/requirement", h.SetRequirement)
	r.Delete("/{id}/fields/{entryID}", h.RemoveField)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ident := shared.IdentityFromContext(r.Context())
	categories, err := h.service.List(r.Context(), ident.TenantID)
	if err != nil {
		h.logger.Error("list categories failed", "error", err)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"categories": categories})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	ident := shared.IdentityFromContext(r.Context())
	id, ok := h.categoryID(w, r)
	if !ok {
		return
	}
	category, err := h.service.Get(r.Context(), ident.TenantID, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, category)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ident := shared.IdentityFromContext(r.Context())
	var input CategoryInput
	if !h.decode(w, r, &input) {
		return
	}
	category, err := h.service.Create(r.Context(), ident.TenantID, input)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, category)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ident := shared.IdentityFromContext(r.Context())
	id, ok := h.categoryID(w, r)
	if !ok {
		return
	}
	var input CategoryInput
	if !h.decode(w, r, &input) {
		return
	}
	category, err := h.service.Update(r.Context(), ident.TenantID, id, input)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, category)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ident := shared.IdentityFromContext(r.Context())
	id, ok := h.categoryID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), ident.TenantID, id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddField(w http.ResponseWriter, r *http.Request) {
	ident := shared.IdentityFromContext(r.Context())
	id, ok := h.categoryID(w, r)
	if !ok {
		return
	}
	var req AddFieldRequest
	if !h.decode(w, r, &req) {
		return
	}
	category, err := h.service.AddField(r.Context(), ident.TenantID, id, req.FieldID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, category)
}

func (h *Handler) AddAllMissing(w http.ResponseWriter, r *http.Request) {
	ident := shared.IdentityFromContext(r.Context())
	id, ok := h.categoryID(w, r)
	if !ok {
		return
	}
	result, err := h.service.AddAllMissing(r.Context(), ident.TenantID, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	message := "fields added"
	if result.Added == 0 {
		message = "every library field is already configured"
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"added": result.Added, "message": message})
}

func (h *Handler) SetRequirement(w http.ResponseWriter, r *http.Request) {
	ident := shared.IdentityFromContext(r.Context())
	id, ok := h.categoryID(w, r)
	if !ok {
		return
	}
	var req SetRequirementRequest
	if !h.decode(w, r, &req) {
		return
	}
	category, err := h.service.SetRequirement(r.Context(), ident.TenantID, id, chi.URLParam(r, "entryID"), req.Requirement)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, category)
}

func (h *Handler) RemoveField(w http.ResponseWriter, r *http.Request) {
	ident := shared.IdentityFromContext(r.Context())
	id, ok := h.categoryID(w, r)
	if !ok {
		return
	}
	category, err := h.service.RemoveField(r.Context(), ident.TenantID, id, chi.URLParam(r, "entryID"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, category)
}

func (h *Handler) Reorder(w http.ResponseWriter, r *http.Request) {
	ident := shared.IdentityFromContext(r.Context())
	id, ok := h.categoryID(w, r)
	if !ok {
		return
	}
	var req ReorderRequest
	if !h.decode(w, r, &req) {
		return
	}
	category, err := h.service.Reorder(r.Context(), ident.TenantID, id, req.EntryIDs)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, category)
}

func (h *Handler) categoryID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid category id")
		return 0, false
	}
	return id, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := httpx.DecodeJSON(r, target); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return false
	}
	if err := h.validate.Struct(target); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return false
	}
	return true
}
