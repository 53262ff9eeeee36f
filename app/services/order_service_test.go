package services

import (
	"regexp"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/Rakhulsr/go-ecommerce-cart/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrderRequest(t *testing.T) OrderRequest {
	t.Helper()
	calc, err := NewCheckoutCalculator(models.TaxModelGST)
	require.NoError(t, err)
	promo := NewPromotion()
	_, _ = promo.Apply("SAVE10")

	phone := testLine("phone", "25.50", 1)
	phone.Name = "Phone case"
	phone.Category = "Electronics"
	book := testLine("book", "7.25", 2)
	book.Name = "Paperback"
	book.Category = "Books"
	book.GSTRate = decimal.Zero

	lines := []models.CartLine{phone, book}
	totals, err := calc.Totals(lines, promo)
	require.NoError(t, err)
	return OrderRequest{CartID: "c1", Lines: lines, Totals: totals, Customer: validCustomer()}
}

func TestBuildOrder(t *testing.T) {
	req := testOrderRequest(t)
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	order := BuildOrder(req, now)

	assert.Regexp(t, regexp.MustCompile(`^INV-20260314-[0-9A-F]{8}$`), order.OrderCode)
	assert.Equal(t, "c1", order.CartID)
	assert.Equal(t, "gst", order.TaxModel)
	assert.True(t, order.GrandTotal.Equal(req.Totals.GrandTotal))
	assert.Equal(t, models.OrderStatusPending, order.Status)
	require.NotNil(t, order.OrderCustomer)
	assert.Equal(t, order.ID, order.OrderCustomer.OrderID)

	require.Len(t, order.OrderItems, 2)
	assert.Equal(t, "25.50", order.OrderItems[0].BaseTotal.StringFixed(2))
	assert.Equal(t, "4.59", order.OrderItems[0].GSTAmount.StringFixed(2))
	assert.Equal(t, "14.50", order.OrderItems[1].BaseTotal.StringFixed(2))
	assert.True(t, order.OrderItems[1].GSTAmount.IsZero())
}

func TestBuildSnapRequestBalancesItems(t *testing.T) {
	order := BuildOrder(testOrderRequest(t), time.Now())

	req := BuildSnapRequest(order, "http://localhost:8080/checkout/finish")

	require.NotNil(t, req.Items)
	var sum int64
	ids := map[string]bool{}
	for _, item := range *req.Items {
		sum += item.Price * int64(item.Qty)
		ids[item.ID] = true
	}
	assert.Equal(t, req.TransactionDetails.GrossAmt, sum)
	assert.Equal(t, order.OrderCode, req.TransactionDetails.OrderID)
	assert.True(t, ids["SHIPPING_FEE"])
	assert.True(t, ids["TAX"])
	assert.True(t, ids["DISCOUNT"])
	require.NotNil(t, req.CustomerDetail)
	assert.Equal(t, "asha@example.com", req.CustomerDetail.Email)
	assert.Contains(t, req.Callbacks.Finish, order.OrderCode)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abcdef", 3))
	assert.Equal(t, "ab", truncate("ab", 3))

	// "₹" is three bytes; a cut inside it drops the whole rune.
	assert.Equal(t, "Mug ", truncate("Mug ₹99", 5))
	assert.Equal(t, "Mug ₹", truncate("Mug ₹99", 7))
	assert.True(t, utf8.ValidString(truncate(strings.Repeat("₹", 30), 50)))
	assert.Len(t, truncate(strings.Repeat("₹", 30), 50), 48)
}
