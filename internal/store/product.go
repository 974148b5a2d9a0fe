package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/CharlissonFagundes/app-gereciamento-estoque/internal/domain"
)

// ProductRepository handles database operations for catalog entries
type ProductRepository interface {
	// Save inserts the product when its id is unset and assigns the
	// generated id back onto it; otherwise it overwrites all mutable
	// fields of the existing row.
	Save(ctx context.Context, product *domain.Product) error

	// Delete removes the product row. It fails with ErrProductReferenced
	// while any sale still references the product.
	Delete(ctx context.Context, id int64) error

	// FindAll returns every product ordered by name ascending
	FindAll(ctx context.Context) ([]domain.Product, error)

	// FindByID returns the product or ErrProductNotFound
	FindByID(ctx context.Context, id int64) (*domain.Product, error)

	// FindByName returns the first product whose name contains text,
	// case-insensitively, or ErrProductNotFound
	FindByName(ctx context.Context, text string) (*domain.Product, error)

	// Search returns all products whose name contains text,
	// case-insensitively, ordered by name ascending
	Search(ctx context.Context, text string) ([]domain.Product, error)
}

// GormProductRepository is the GORM implementation of ProductRepository
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func validateProduct(p *domain.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	if p.Name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if p.Quantity < 0 {
		return &ValidationError{Field: "quantity", Reason: "must not be negative"}
	}
	if !p.Price.IsPositive() {
		return &ValidationError{Field: "price", Reason: "must be greater than zero"}
	}
	return nil
}

func (r *GormProductRepository) Save(ctx context.Context, product *domain.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}

	var err error
	if product.ID == 0 {
		err = r.db.WithContext(ctx).Create(product).Error
	} else {
		res := r.db.WithContext(ctx).Model(&domain.Product{}).
			Where("id = ?", product.ID).
			Updates(map[string]interface{}{
				"name":        product.Name,
				"description": product.Description,
				"quantity":    product.Quantity,
				"price":       product.Price,
			})
		if res.Error == nil && res.RowsAffected == 0 {
			return ErrProductNotFound
		}
		err = res.Error
	}

	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateName
	default:
		return storageErr("save product", err)
	}
}

func (r *GormProductRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&domain.Sale{}).Where("product_id = ?", id).Count(&refs).Error; err != nil {
			return storageErr("delete product", err)
		}
		if refs > 0 {
			return ErrProductReferenced
		}

		res := tx.Where("id = ?", id).Delete(&domain.Product{})
		switch {
		case errors.Is(res.Error, gorm.ErrForeignKeyViolated):
			// FK restrict fired between the count and the delete
			return ErrProductReferenced
		case res.Error != nil:
			return storageErr("delete product", res.Error)
		case res.RowsAffected == 0:
			return ErrProductNotFound
		}
		return nil
	})
}

func (r *GormProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).Order("name ASC").Find(&products).Error
	if err != nil {
		return nil, storageErr("list products", err)
	}
	return products, nil
}

func (r *GormProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrProductNotFound
	case err != nil:
		return nil, storageErr("get product", err)
	}
	return &p, nil
}

func (r *GormProductRepository) FindByName(ctx context.Context, text string) (*domain.Product, error) {
	var p domain.Product
	err := nameContains(r.db.WithContext(ctx), text).Order("name ASC").First(&p).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrProductNotFound
	case err != nil:
		return nil, storageErr("search product", err)
	}
	return &p, nil
}

func (r *GormProductRepository) Search(ctx context.Context, text string) ([]domain.Product, error) {
	var products []domain.Product
	err := nameContains(r.db.WithContext(ctx), text).Order("name ASC").Find(&products).Error
	if err != nil {
		return nil, storageErr("search products", err)
	}
	return products, nil
}

// nameContains applies a case-insensitive substring filter on the product
// name. Postgres needs ILIKE; sqlite LIKE is case-insensitive only for
// ASCII, so lowering both sides keeps behavior uniform.
func nameContains(db *gorm.DB, text string) *gorm.DB {
	q := db.Model(&domain.Product{})
	if text == "" {
		return q
	}
	if db.Dialector.Name() == "postgres" {
		return q.Where("name ILIKE ?", "%"+text+"%")
	}
	return q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(text)+"%")
}
