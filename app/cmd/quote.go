package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/Rakhulsr/go-ecommerce-cart/app/models"
	"github.com/Rakhulsr/go-ecommerce-cart/app/services"
	"github.com/Rakhulsr/go-ecommerce-cart/app/utils/format"
)

// quoteCart prints checkout totals for a stored cart snapshot file.
func quoteCart(w io.Writer, path, promoCode string, taxModel models.TaxModel) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read cart file: %w", err)
	}

	lines, err := services.DecodeSnapshot(payload)
	if err != nil {
		return err
	}
	kept, dropped := services.SanitizeSnapshot(lines)
	if dropped > 0 {
		fmt.Fprintf(w, "warning: skipped %d invalid lines\n", dropped)
	}

	cart := services.NewCart()
	cart.Load(kept)

	promo := services.NewPromotion()
	if promoCode != "" {
		if _, err := promo.Apply(promoCode); err != nil {
			return err
		}
	}

	calculator, err := services.NewCheckoutCalculator(taxModel)
	if err != nil {
		return err
	}
	totals, err := calculator.Totals(cart.Lines(), promo)
	if err != nil {
		return err
	}

	for _, line := range cart.Lines() {
		fmt.Fprintf(w, "%-30s %3d x %12s\n", line.Name, line.Quantity, format.FormatMoney(line.UnitPrice))
	}
	fmt.Fprintf(w, "%-30s %18s\n", "Subtotal", format.FormatMoney(totals.Subtotal))
	if totals.PromoCode != "" {
		label := fmt.Sprintf("Discount (%s, %s)", totals.PromoCode, format.FormatPercent(totals.DiscountPercent))
		fmt.Fprintf(w, "%-30s %18s\n", label, "-"+format.FormatMoney(totals.DiscountAmount))
	}
	fmt.Fprintf(w, "%-30s %18s\n", "Shipping", format.FormatMoney(totals.ShippingCost))

	categories := make([]string, 0, len(totals.GSTByCategory))
	for category := range totals.GSTByCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		fmt.Fprintf(w, "  GST %-25s %18s\n", category, format.FormatMoney(totals.GSTByCategory[category]))
	}
	taxLabel := "Tax (" + string(totals.TaxModel) + ")"
	if totals.TaxModel == models.TaxModelFlat {
		taxLabel = "Tax (flat " + format.FormatPercent(totals.TaxPercent) + ")"
	}
	fmt.Fprintf(w, "%-30s %18s\n", taxLabel, format.FormatMoney(totals.TaxAmount))
	fmt.Fprintf(w, "%-30s %18s\n", "Grand total", format.FormatMoney(totals.GrandTotal))
	return nil
}
