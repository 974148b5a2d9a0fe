package store

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/CharlissonFagundes/app-gereciamento-estoque/internal/domain"
)

// SaleLedger is the append-only record of registered sales plus its
// aggregate queries. Register is the only operation that mutates stock.
type SaleLedger interface {
	// Register records a sale of quantity units of the given product and
	// decrements its stock in the same transaction. A zero saleDate means
	// the moment of registration. Either both the sale row and the stock
	// decrement are persisted, or neither is.
	Register(ctx context.Context, productID int64, quantity int, saleDate time.Time) (*domain.Sale, error)

	// FindAll returns every sale joined with its product's name and
	// description, most recent first
	FindAll(ctx context.Context) ([]domain.SaleDetail, error)

	// Recent returns at most limit sales, most recent first
	Recent(ctx context.Context, limit int) ([]domain.SaleDetail, error)

	// TotalRevenue returns the sum of total_value across all sales, zero
	// when the ledger is empty
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
}

// GormSaleLedger is the GORM implementation of SaleLedger
type GormSaleLedger struct {
	db *gorm.DB
}

func NewGormSaleLedger(db *gorm.DB) *GormSaleLedger {
	return &GormSaleLedger{db: db}
}

func (l *GormSaleLedger) Register(ctx context.Context, productID int64, quantity int, saleDate time.Time) (*domain.Sale, error) {
	if quantity <= 0 {
		return nil, &ValidationError{Field: "quantity", Reason: "must be greater than zero"}
	}
	if saleDate.IsZero() {
		saleDate = time.Now()
	}

	var sale *domain.Sale
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product domain.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return storageErr("register sale", err)
		}

		if quantity > product.Quantity {
			return &InsufficientStockError{
				ProductID: product.ID,
				Available: product.Quantity,
				Requested: quantity,
			}
		}

		s := domain.Sale{
			ProductID:  product.ID,
			Quantity:   quantity,
			SaleDate:   saleDate,
			TotalValue: product.Price.Mul(decimal.NewFromInt(int64(quantity))),
		}
		if err := tx.Create(&s).Error; err != nil {
			return storageErr("register sale", err)
		}

		// The decrement re-checks availability at UPDATE time so stock can
		// never go negative even if the row changed since the read above.
		res := tx.Model(&domain.Product{}).
			Where("id = ? AND quantity >= ?", product.ID, quantity).
			UpdateColumn("quantity", gorm.Expr("quantity - ?", quantity))
		if res.Error != nil {
			return storageErr("register sale", res.Error)
		}
		if res.RowsAffected == 0 {
			return &InsufficientStockError{
				ProductID: product.ID,
				Available: product.Quantity,
				Requested: quantity,
			}
		}

		sale = &s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

func (l *GormSaleLedger) FindAll(ctx context.Context) ([]domain.SaleDetail, error) {
	return l.query(ctx, 0)
}

func (l *GormSaleLedger) Recent(ctx context.Context, limit int) ([]domain.SaleDetail, error) {
	if limit <= 0 {
		limit = 10
	}
	return l.query(ctx, limit)
}

func (l *GormSaleLedger) query(ctx context.Context, limit int) ([]domain.SaleDetail, error) {
	q := l.db.WithContext(ctx).Table("sales").
		Select("sales.id, sales.product_id, products.name AS product_name, " +
			"products.description AS product_description, sales.quantity, " +
			"sales.sale_date, sales.total_value").
		Joins("JOIN products ON products.id = sales.product_id").
		Order("sales.sale_date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var details []domain.SaleDetail
	if err := q.Scan(&details).Error; err != nil {
		return nil, storageErr("list sales", err)
	}
	return details, nil
}

func (l *GormSaleLedger) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	row := l.db.WithContext(ctx).Model(&domain.Sale{}).
		Select("COALESCE(SUM(total_value), 0)").Row()

	var total decimal.Decimal
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, storageErr("total revenue", err)
	}
	return total, nil
}
