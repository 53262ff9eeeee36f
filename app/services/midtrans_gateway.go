package services

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/Rakhulsr/go-ecommerce-cart/app/models"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/shopspring/decimal"
)

const midtransItemNameLimit = 50

// MidtransGateway opens a Snap payment page for an order.
type MidtransGateway struct {
	client    *snap.Client
	finishURL string
}

func NewMidtransGateway(client *snap.Client, appURL string) *MidtransGateway {
	return &MidtransGateway{client: client, finishURL: appURL + "/checkout/finish"}
}

func (g *MidtransGateway) CreatePayment(ctx context.Context, order *models.Order) (*PaymentLink, error) {
	snapReq := BuildSnapRequest(order, g.finishURL)

	snapResp, errMidtrans := g.client.CreateTransaction(snapReq)
	if errMidtrans != nil {
		return nil, fmt.Errorf("midtrans CreateTransaction failed: %v", errMidtrans.Error())
	}
	if snapResp == nil || snapResp.RedirectURL == "" || snapResp.Token == "" {
		return nil, errors.New("midtrans transaction initiated but returned invalid response (missing redirect URL or token)")
	}

	return &PaymentLink{Token: snapResp.Token, RedirectURL: snapResp.RedirectURL}, nil
}

// BuildSnapRequest lists every item, shipping, tax and discount so the
// item sum matches the gross amount Midtrans charges.
func BuildSnapRequest(order *models.Order, finishURL string) *snap.Request {
	var items []midtrans.ItemDetails
	for _, item := range order.OrderItems {
		items = append(items, midtrans.ItemDetails{
			ID:       item.ProductID,
			Name:     truncate(item.ProductName, midtransItemNameLimit),
			Price:    item.Price.Round(0).IntPart(),
			Qty:      int32(item.Qty),
			Category: item.Category,
		})
	}
	if order.ShippingCost.IsPositive() {
		items = append(items, midtrans.ItemDetails{ID: "SHIPPING_FEE", Name: "Shipping", Price: order.ShippingCost.Round(0).IntPart(), Qty: 1})
	}
	if order.TaxAmount.IsPositive() {
		items = append(items, midtrans.ItemDetails{ID: "TAX", Name: "Tax", Price: order.TaxAmount.Round(0).IntPart(), Qty: 1})
	}
	if order.DiscountAmount.IsPositive() {
		items = append(items, midtrans.ItemDetails{ID: "DISCOUNT", Name: truncate("Promo "+order.PromoCode, midtransItemNameLimit), Price: -order.DiscountAmount.Round(0).IntPart(), Qty: 1})
	}

	itemsTotal := decimal.Zero
	for _, item := range items {
		itemsTotal = itemsTotal.Add(decimal.NewFromInt(item.Price).Mul(decimal.NewFromInt32(item.Qty)))
	}
	gross := order.GrandTotal.Round(0)
	if difference := gross.Sub(itemsTotal); !difference.IsZero() {
		items = append(items, midtrans.ItemDetails{ID: "ADJUSTMENT", Name: "Rounding adjustment", Price: difference.IntPart(), Qty: 1})
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  order.OrderCode,
			GrossAmt: gross.IntPart(),
		},
		Items:           &items,
		EnabledPayments: snap.AllSnapPaymentType,
		Callbacks: &snap.Callbacks{
			Finish: finishURL + "?order_code=" + order.OrderCode,
		},
	}

	if c := order.OrderCustomer; c != nil {
		addr := &midtrans.CustomerAddress{
			FName:    c.FirstName,
			LName:    c.LastName,
			Phone:    c.Phone,
			Address:  c.Address1,
			City:     c.City,
			Postcode: c.PostCode,
		}
		req.CustomerDetail = &midtrans.CustomerDetails{
			FName:    c.FirstName,
			LName:    c.LastName,
			Email:    c.Email,
			Phone:    c.Phone,
			BillAddr: addr,
			ShipAddr: addr,
		}
	}
	return req
}

// truncate cuts s to at most limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
