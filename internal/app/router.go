package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/etalase/etalase/internal/banners"
	"github.com/etalase/etalase/internal/catalog/categories"
	"github.com/etalase/etalase/internal/catalog/fields"
	"github.com/etalase/etalase/internal/catalog/form"
	"github.com/etalase/etalase/internal/catalog/products"
	"github.com/etalase/etalase/internal/observability"
	"github.com/etalase/etalase/internal/rbac"
	"github.com/etalase/etalase/internal/sales/customers"
	"github.com/etalase/etalase/internal/storefront"
	"github.com/etalase/etalase/internal/warranty"
	"github.com/etalase/etalase/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger *slog.Logger
	Config *Config

	FieldsHandler       *fields.Handler
	FieldOptionsHandler *form.Handler
	CategoriesHandler   *categories.Handler
	ProductsHandler     *products.Handler
	CustomersHandler    *customers.Handler
	BannersHandler      *banners.Handler
	WarrantyHandler     *warranty.Handler
	StorefrontHandler   *storefront.Handler

	RBACMiddleware     rbac.Middleware
	PermissionsHandler *rbac.PermissionsHandler
	JobHandler         *jobs.Handler
	Metrics            *observability.Metrics
}

// NewRouter constructs the chi.Router with service defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(IdentityMiddleware(params.Logger))

		r.Route("/admin", func(r chi.Router) {
			mountResource(r, "/fields", params.FieldsHandler.Routes,
				params.RBACMiddleware, rbac.PermFieldsView, rbac.PermFieldsManage)
			mountResource(r, "/field-options", params.FieldOptionsHandler.Routes,
				params.RBACMiddleware, rbac.PermFieldsView, rbac.PermFieldsView)
			mountResource(r, "/categories", params.CategoriesHandler.Routes,
				params.RBACMiddleware, rbac.PermCategoriesView, rbac.PermCategoriesEdit)
			mountResource(r, "/products", params.ProductsHandler.Routes,
				params.RBACMiddleware, rbac.PermProductsView, rbac.PermProductsManage)
			mountResource(r, "/customers", params.CustomersHandler.Routes,
				params.RBACMiddleware, rbac.PermCustomersView, rbac.PermCustomersEdit)
			mountResource(r, "/banners", params.BannersHandler.Routes,
				params.RBACMiddleware, rbac.PermBannersManage, rbac.PermBannersManage)
			mountResource(r, "/warranty-templates", params.WarrantyHandler.Routes,
				params.RBACMiddleware, rbac.PermWarrantyManage, rbac.PermWarrantyManage)

			if params.PermissionsHandler != nil {
				r.Route("/permissions", params.PermissionsHandler.Routes)
			}
			if params.JobHandler != nil {
				r.Route("/jobs", params.JobHandler.MountRoutes)
			}
		})

		r.Route("/storefront", params.StorefrontHandler.Routes)
	})

	return r
}

// mountResource mounts an admin resource with its read permission on every
// verb and its manage permission on mutating verbs.
func mountResource(r chi.Router, pattern string, routes func(chi.Router),
	mw rbac.Middleware, viewPerm, managePerm string) {
	r.Route(pattern, func(r chi.Router) {
		r.Use(mw.RequireAny(viewPerm))
		r.Use(writeGuard(mw, managePerm))
		routes(r)
	})
}

// writeGuard applies the manage permission to everything except safe verbs.
func writeGuard(mw rbac.Middleware, perm string) func(http.Handler) http.Handler {
	guarded := mw.RequireAny(perm)
	return func(next http.Handler) http.Handler {
		gate := guarded(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
			default:
				gate.ServeHTTP(w, r)
			}
		})
	}
}
