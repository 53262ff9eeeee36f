package fakers

import (
	"math"
	"math/rand"

	"github.com/Rakhulsr/go-ecommerce-cart/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

type categorySeed struct {
	Name          string
	Subcategories []string
	GSTRate       float64
}

var categorySeeds = []categorySeed{
	{Name: "Electronics", Subcategories: []string{"Audio", "Phones", "Accessories"}, GSTRate: 18},
	{Name: "Books", Subcategories: []string{"Fiction", "Reference"}, GSTRate: 0},
	{Name: "Clothing", Subcategories: []string{"Shirts", "Shoes"}, GSTRate: 12},
	{Name: "Home", Subcategories: []string{"Kitchen", "Decor"}, GSTRate: 18},
}

var brands = []string{"Acme", "Northwind", "Globex", "Initech", "Umbrella"}

var imagePaths = []string{
	"/images/products/ss.jpg",
	"/images/products/ss1.jpg",
	"/images/products/ss2.jpg",
}

func ProductFaker() *models.Product {
	name := faker.Word() + " " + faker.Word()
	category := categorySeeds[rand.Intn(len(categorySeeds))]
	price := fakePrice()

	product := &models.Product{
		ID:          uuid.New().String(),
		Name:        name,
		Slug:        slug.Make(name + "-" + uuid.NewString()[:6]),
		Sku:         slug.Make(name + "-" + uuid.NewString()[:4]),
		Brand:       brands[rand.Intn(len(brands))],
		Category:    category.Name,
		Subcategory: category.Subcategories[rand.Intn(len(category.Subcategories))],
		Image:       imagePaths[rand.Intn(len(imagePaths))],
		Price:       decimal.NewFromFloat(price),
		Stock:       rand.Intn(20) + 1,
		GSTRate:     decimal.NewFromFloat(category.GSTRate),
	}

	if rand.Intn(3) == 0 {
		product.DiscountPrice = decimal.NewFromFloat(precision(price*0.9, 2))
	}
	return product
}

func fakePrice() float64 {
	return precision(1+rand.Float64()*math.Pow10(rand.Intn(3)+1), 2)
}

func precision(val float64, pre int) float64 {
	a := math.Pow10(pre)
	return float64(int(val*a)) / a
}
