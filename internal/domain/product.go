package domain

import (
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Quantity is the single source of truth for
// available stock and is only decremented through the sale ledger.
type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"uniqueIndex;size:200;not null" json:"name"`
	Description string          `json:"description"`
	Quantity    int             `gorm:"not null;check:quantity >= 0" json:"quantity"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null;check:price > 0" json:"price"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}
