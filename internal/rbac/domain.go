package rbac

// Permission represents an atomic capability checked at the route level.
type Permission = string

const (
	PermFieldsView     Permission = "fields.view"
	PermFieldsManage   Permission = "fields.manage"
	PermCategoriesView Permission = "categories.view"
	PermCategoriesEdit Permission = "categories.manage"
	PermProductsView   Permission = "products.view"
	PermProductsManage Permission = "products.manage"
	PermCustomersView  Permission = "customers.view"
	PermCustomersEdit  Permission = "customers.manage"
	PermBannersManage  Permission = "banners.manage"
	PermWarrantyManage Permission = "warranty.manage"
)

// Role names as delivered in the actor-role header by the fronting proxy.
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleStaff  = "staff"
	RoleViewer = "viewer"
)

var allPermissions = []Permission{
	PermFieldsView, PermFieldsManage,
	PermCategoriesView, PermCategoriesEdit,
	PermProductsView, PermProductsManage,
	PermCustomersView, PermCustomersEdit,
	PermBannersManage, PermWarrantyManage,
}

// rolePermissions is the static grant table. Roles are few and fixed; the
// proxy owns user-to-role assignment, so there is no mutable role store here.
var rolePermissions = map[string][]Permission{
	RoleOwner: allPermissions,
	RoleAdmin: allPermissions,
	RoleStaff: {
		PermFieldsView,
		PermCategoriesView,
		PermProductsView, PermProductsManage,
		PermCustomersView, PermCustomersEdit,
	},
	RoleViewer: {
		PermFieldsView,
		PermCategoriesView,
		PermProductsView,
		PermCustomersView,
	},
}
