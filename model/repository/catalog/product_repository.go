package catalog

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	entity "eyewear.GO/model/entity/catalog"
)

// ErrNotFound is returned when no product matches.
var ErrNotFound = errors.New("product not found")

type ProductRepository struct {
	db *gorm.DB
}

var (
	repoMu   sync.Mutex
	repoByDB = map[*gorm.DB]*ProductRepository{}
)

// GetProductRepository returns a shared repository per DB handle.
func GetProductRepository(db *gorm.DB) *ProductRepository {
	repoMu.Lock()
	defer repoMu.Unlock()
	if r, ok := repoByDB[db]; ok {
		return r
	}
	r := NewProductRepository(db)
	repoByDB[db] = r
	return r
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// AutoMigrate creates or updates the catalog tables.
func (r *ProductRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&entity.Product{}, &entity.ProductVariant{}, &entity.ProductImage{})
}

func (r *ProductRepository) withChildren(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") })
}

// FindByKind returns every product of kind (active or not) in
// merchandising order.
func (r *ProductRepository) FindByKind(ctx context.Context, kind string) ([]entity.Product, error) {
	var products []entity.Product
	err := r.withChildren(ctx).
		Where("kind = ?", kind).
		Order("position ASC").
		Order("product_id ASC").
		Find(&products).Error
	return products, err
}

func (r *ProductRepository) FindByID(ctx context.Context, kind, id string) (*entity.Product, error) {
	var p entity.Product
	err := r.withChildren(ctx).
		Where("kind = ? AND product_id = ?", kind, id).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts p with its variants and images.
func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// Upsert writes p and replaces its variants and images.
func (r *ProductRepository) Upsert(ctx context.Context, p *entity.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(p).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", p.ProductID).Delete(&entity.ProductVariant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", p.ProductID).Delete(&entity.ProductImage{}).Error; err != nil {
			return err
		}
		if len(p.Variants) > 0 {
			if err := tx.Create(&p.Variants).Error; err != nil {
				return err
			}
		}
		if len(p.Images) > 0 {
			if err := tx.Create(&p.Images).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

type kindCount struct {
	Kind  string
	Count int64
}

// CountByKind returns the number of products per kind.
func (r *ProductRepository) CountByKind(ctx context.Context) (map[string]int64, error) {
	var rows []kindCount
	err := r.db.WithContext(ctx).
		Model(&entity.Product{}).
		Select("kind, COUNT(*) AS count").
		Group("kind").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Kind] = row.Count
	}
	return out, nil
}
