package form

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/etalase/etalase/internal/catalog/fields"
	"github.com/etalase/etalase/internal/platform/httpx"
	"github.com/etalase/etalase/internal/shared"
)

// DefinitionGetter loads the field whose options are being requested.
// Satisfied by *fields.Service.
type DefinitionGetter interface {
	GetByID(ctx context.Context, tenantID, id int64) (fields.FieldDefinition, error)
}

// Handler serves live option lists for table-relation fields. Options are
// read fresh per request; external tables change outside our write path so
// they are never cached.
type Handler struct {
	logger *slog.Logger
	defs   DefinitionGetter
	lookup LookupSource
}

func NewHandler(logger *slog.Logger, defs DefinitionGetter, lookup LookupSource) *Handler {
	return &Handler{logger: logger, defs: defs, lookup: lookup}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/{fieldID}/options", h.Options)
}

func (h *Handler) Options(w http.ResponseWriter, r *http.Request) {
	ident := shared.IdentityFromContext(r.Context())
	id, err := strconv.ParseInt(chi.URLParam(r, "fieldID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid field id")
		return
	}
	def, err := h.defs.GetByID(r.Context(), ident.TenantID, id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if def.Type != fields.TypeTable || def.TableConfig == nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "field has no table relation")
		return
	}
	options, err := h.lookup.Options(r.Context(), *def.TableConfig)
	if err != nil {
		h.logger.Error("field options lookup failed", "error", err, "field_id", id)
		httpx.RespondError(w, err)
		return
	}
	if options == nil {
		options = []Option{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"options": options})
}
