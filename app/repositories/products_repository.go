package repositories

import (
	"context"
	"errors"

	"github.com/Rakhulsr/go-ecommerce-cart/app/models"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

type ProductRepositoryImpl interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
	GetProducts(ctx context.Context, limit int) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &productRepository{db}
}

func (p *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := p.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) GetProducts(ctx context.Context, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	var products []models.Product
	if err := p.db.WithContext(ctx).Model(&models.Product{}).Order("created_at desc").Limit(limit).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (p *productRepository) Create(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Create(product).Error
}
