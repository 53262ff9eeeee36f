package models

// CatalogProduct is the raw product shape handed over by the catalog at
// add-to-cart time. Prices arrive as strings the way the catalog API and
// HTML forms send them.
type CatalogProduct struct {
	ID            string   `json:"id" validate:"required"`
	Name          string   `json:"name"`
	Image         string   `json:"image"`
	Brand         string   `json:"brand"`
	Category      string   `json:"category"`
	Subcategory   string   `json:"subcategory"`
	Price         string   `json:"price"`
	DiscountPrice string   `json:"discountPrice"`
	Stock         *int     `json:"stock" validate:"omitempty,min=0"`
	GSTRate       *float64 `json:"gstRate" validate:"omitempty,min=0,max=100"`
}

// PreformattedLine is a cart line already shaped by the client, e.g. a
// "buy again" entry or a line replayed from another device.
type PreformattedLine struct {
	ID            string   `json:"id" validate:"required"`
	Name          string   `json:"name"`
	Image         string   `json:"image"`
	Brand         string   `json:"brand"`
	Category      string   `json:"category"`
	Subcategory   string   `json:"subcategory"`
	Price         float64  `json:"price"`
	Quantity      int      `json:"quantity"`
	Stock         *int     `json:"stock" validate:"omitempty,min=0"`
	GSTRate       *float64 `json:"gstRate" validate:"omitempty,min=0,max=100"`
	SelectedSize  string   `json:"selectedSize"`
	SelectedColor string   `json:"selectedColor"`
}
