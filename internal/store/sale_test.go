package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/CharlissonFagundes/app-gereciamento-estoque/internal/domain"
)

var zeroTime time.Time

func TestSaleLedgerRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("RegistersSaleAndDecrementsStock", func(t *testing.T) {
		s := newTestStore(t)
		repo := NewGormProductRepository(s.DB())
		ledger := NewGormSaleLedger(s.DB())

		p := domain.Product{Name: "Widget", Quantity: 10, Price: price(5.00)}
		require.NoError(t, repo.Save(ctx, &p))

		sale, err := ledger.Register(ctx, p.ID, 3, zeroTime)
		require.NoError(t, err)
		require.NotZero(t, sale.ID)
		require.Equal(t, p.ID, sale.ProductID)
		require.Equal(t, 3, sale.Quantity)
		require.True(t, sale.TotalValue.Equal(price(15.00)), "total %s", sale.TotalValue)
		require.False(t, sale.SaleDate.IsZero())

		got, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		require.Equal(t, 7, got.Quantity)
	})

	t.Run("InsufficientStockLeavesNoTrace", func(t *testing.T) {
		s := newTestStore(t)
		repo := NewGormProductRepository(s.DB())
		ledger := NewGormSaleLedger(s.DB())

		p := domain.Product{Name: "Widget", Quantity: 7, Price: price(5.00)}
		require.NoError(t, repo.Save(ctx, &p))

		_, err := ledger.Register(ctx, p.ID, 999, zeroTime)
		var stockErr *InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		require.Equal(t, 7, stockErr.Available)
		require.Equal(t, 999, stockErr.Requested)

		// atomicity: no sale row and stock unchanged, checked together
		var count int64
		require.NoError(t, s.DB().Model(&domain.Sale{}).Count(&count).Error)
		require.Zero(t, count)

		got, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		require.Equal(t, 7, got.Quantity)
	})

	t.Run("UnknownProductFails", func(t *testing.T) {
		ledger := NewGormSaleLedger(newTestStore(t).DB())
		_, err := ledger.Register(ctx, 1234, 1, zeroTime)
		require.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("NonPositiveQuantityFails", func(t *testing.T) {
		ledger := NewGormSaleLedger(newTestStore(t).DB())

		var verr *ValidationError
		_, err := ledger.Register(ctx, 1, 0, zeroTime)
		require.ErrorAs(t, err, &verr)
		_, err = ledger.Register(ctx, 1, -5, zeroTime)
		require.ErrorAs(t, err, &verr)
	})

	t.Run("StockConservationOverSequence", func(t *testing.T) {
		s := newTestStore(t)
		repo := NewGormProductRepository(s.DB())
		ledger := NewGormSaleLedger(s.DB())

		p := domain.Product{Name: "Widget", Quantity: 20, Price: price(2.50)}
		require.NoError(t, repo.Save(ctx, &p))

		sold := 0
		for _, qty := range []int{5, 1, 7, 30, 4} {
			_, err := ledger.Register(ctx, p.ID, qty, zeroTime)
			if qty <= 20-sold {
				require.NoError(t, err)
				sold += qty
			} else {
				var stockErr *InsufficientStockError
				require.ErrorAs(t, err, &stockErr)
				require.Equal(t, 20-sold, stockErr.Available)
			}

			got, ferr := repo.FindByID(ctx, p.ID)
			require.NoError(t, ferr)
			require.Equal(t, 20-sold, got.Quantity)
		}
	})

	t.Run("TotalValueFrozenAtSaleTime", func(t *testing.T) {
		s := newTestStore(t)
		repo := NewGormProductRepository(s.DB())
		ledger := NewGormSaleLedger(s.DB())

		p := domain.Product{Name: "Widget", Quantity: 10, Price: price(5.00)}
		require.NoError(t, repo.Save(ctx, &p))

		sale, err := ledger.Register(ctx, p.ID, 2, zeroTime)
		require.NoError(t, err)

		p.Price = price(99.99)
		require.NoError(t, repo.Save(ctx, &p))

		var stored domain.Sale
		require.NoError(t, s.DB().First(&stored, sale.ID).Error)
		require.True(t, stored.TotalValue.Equal(price(10.00)), "total %s", stored.TotalValue)
	})

	t.Run("SuppliedSaleDateIsKept", func(t *testing.T) {
		s := newTestStore(t)
		repo := NewGormProductRepository(s.DB())
		ledger := NewGormSaleLedger(s.DB())

		p := domain.Product{Name: "Widget", Quantity: 5, Price: price(1.00)}
		require.NoError(t, repo.Save(ctx, &p))

		when := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
		sale, err := ledger.Register(ctx, p.ID, 1, when)
		require.NoError(t, err)
		require.True(t, sale.SaleDate.Equal(when))
	})
}

func TestSaleLedgerQueries(t *testing.T) {
	ctx := context.Background()

	t.Run("TotalRevenueOnEmptyLedgerIsZero", func(t *testing.T) {
		ledger := NewGormSaleLedger(newTestStore(t).DB())

		total, err := ledger.TotalRevenue(ctx)
		require.NoError(t, err)
		require.True(t, total.IsZero())
	})

	t.Run("TotalRevenueSumsAllSales", func(t *testing.T) {
		s := newTestStore(t)
		repo := NewGormProductRepository(s.DB())
		ledger := NewGormSaleLedger(s.DB())

		p := domain.Product{Name: "Widget", Quantity: 100, Price: price(2.50)}
		require.NoError(t, repo.Save(ctx, &p))

		for _, qty := range []int{2, 3} {
			_, err := ledger.Register(ctx, p.ID, qty, zeroTime)
			require.NoError(t, err)
		}

		total, err := ledger.TotalRevenue(ctx)
		require.NoError(t, err)
		require.True(t, total.Equal(price(12.50)), "total %s", total)
	})

	t.Run("FindAllJoinsProductDataMostRecentFirst", func(t *testing.T) {
		s := newTestStore(t)
		repo := NewGormProductRepository(s.DB())
		ledger := NewGormSaleLedger(s.DB())

		p := domain.Product{Name: "Widget", Description: "A widget", Quantity: 100, Price: price(1.00)}
		require.NoError(t, repo.Save(ctx, &p))

		older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		newer := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
		_, err := ledger.Register(ctx, p.ID, 1, older)
		require.NoError(t, err)
		_, err = ledger.Register(ctx, p.ID, 2, newer)
		require.NoError(t, err)

		details, err := ledger.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, details, 2)
		require.Equal(t, 2, details[0].Quantity)
		require.Equal(t, "Widget", details[0].ProductName)
		require.Equal(t, "A widget", details[0].ProductDescription)
		require.True(t, details[0].SaleDate.After(details[1].SaleDate))
	})

	t.Run("RecentHonorsLimit", func(t *testing.T) {
		s := newTestStore(t)
		repo := NewGormProductRepository(s.DB())
		ledger := NewGormSaleLedger(s.DB())

		p := domain.Product{Name: "Widget", Quantity: 100, Price: price(1.00)}
		require.NoError(t, repo.Save(ctx, &p))

		base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 15; i++ {
			_, err := ledger.Register(ctx, p.ID, 1, base.Add(time.Duration(i)*time.Hour))
			require.NoError(t, err)
		}

		recent, err := ledger.Recent(ctx, 0)
		require.NoError(t, err)
		require.Len(t, recent, 10)

		recent, err = ledger.Recent(ctx, 5)
		require.NoError(t, err)
		require.Len(t, recent, 5)
		require.True(t, recent[0].SaleDate.After(recent[4].SaleDate))
	})
}
