package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is an immutable ledger entry. TotalValue is frozen at registration
// time and never recomputed from the product's current price.
type Sale struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID  int64           `gorm:"index;not null" json:"product_id"`
	Product    Product         `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT" json:"-"`
	Quantity   int             `gorm:"not null;check:quantity > 0" json:"quantity"`
	SaleDate   time.Time       `gorm:"index;not null" json:"sale_date"`
	TotalValue decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total_value"`
}

// TableName Specify table name
func (Sale) TableName() string {
	return "sales"
}

// SaleDetail is a sale row joined with its product's name and description,
// as rendered by the sales report.
type SaleDetail struct {
	ID                 int64           `json:"id" csv:"id"`
	ProductID          int64           `json:"product_id" csv:"product_id"`
	ProductName        string          `json:"product_name" csv:"product_name"`
	ProductDescription string          `json:"product_description" csv:"product_description"`
	Quantity           int             `json:"quantity" csv:"quantity"`
	SaleDate           time.Time       `json:"sale_date" csv:"sale_date"`
	TotalValue         decimal.Decimal `json:"total_value" csv:"total_value"`
}
