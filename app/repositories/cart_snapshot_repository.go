package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Rakhulsr/go-ecommerce-cart/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrSnapshotNotFound = errors.New("cart snapshot not found")

// CartSnapshotRepository stores the serialized cart line array per cart.
type CartSnapshotRepository interface {
	ReadSnapshot(ctx context.Context, cartID string) ([]byte, error)
	WriteSnapshot(ctx context.Context, cartID string, payload []byte) error
}

type cartSnapshotRepository struct {
	db *gorm.DB
}

func NewCartSnapshotRepository(db *gorm.DB) CartSnapshotRepository {
	return &cartSnapshotRepository{db}
}

func (r *cartSnapshotRepository) ReadSnapshot(ctx context.Context, cartID string) ([]byte, error) {
	var snapshot models.CartSnapshot
	err := r.db.WithContext(ctx).
		Where("cart_id = ? AND storage_key = ?", cartID, models.CartStorageKey).
		First(&snapshot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSnapshotNotFound
		}
		return nil, err
	}
	return []byte(snapshot.Payload), nil
}

func (r *cartSnapshotRepository) WriteSnapshot(ctx context.Context, cartID string, payload []byte) error {
	now := time.Now()
	snapshot := models.CartSnapshot{
		CartID:     cartID,
		StorageKey: models.CartStorageKey,
		Payload:    string(payload),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cart_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&snapshot).Error
}
