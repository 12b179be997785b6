package warranty

import (
	"strings"
	"time"

	"github.com/etalase/etalase/internal/catalog/form"
	"github.com/etalase/etalase/internal/catalog/products"
	"github.com/etalase/etalase/internal/sales/customers"
	"github.com/etalase/etalase/internal/sales/pricing"
)

// Render substitutes the fixed tag set into a template body. The price tag
// renders the customer's effective price, locale-formatted; the expiry date
// is issue date plus the template duration. Tags outside the set are left
// verbatim.
func Render(tpl Template, product products.Product, customer *customers.Customer, issuedAt time.Time) string {
	name := ""
	if customer != nil {
		name = customer.Name
	}
	expiry := issuedAt.AddDate(0, 0, tpl.DurationDays)

	replacer := strings.NewReplacer(
		"{nama_produk}", product.Name,
		"{sku}", product.SKU,
		"{imei}", product.Attributes["imei"],
		"{nama_pelanggan}", name,
		"{tanggal}", issuedAt.Format("02-01-2006"),
		"{tanggal_berakhir}", expiry.Format("02-01-2006"),
		"{harga}", form.FormatMinorUnits(pricing.EffectivePrice(product, customer), "id"),
	)
	return replacer.Replace(tpl.Body)
}
