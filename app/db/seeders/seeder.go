package seeders

import (
	"context"
	"fmt"

	"github.com/Rakhulsr/go-ecommerce-cart/app/db/fakers"
	"github.com/Rakhulsr/go-ecommerce-cart/app/repositories"
	"gorm.io/gorm"
)

func DBSeed(ctx context.Context, db *gorm.DB, count int) error {
	repo := repositories.NewProductRepository(db)
	for i := 0; i < count; i++ {
		if err := repo.Create(ctx, fakers.ProductFaker()); err != nil {
			return fmt.Errorf("failed to seed product %d: %w", i+1, err)
		}
	}
	return nil
}
