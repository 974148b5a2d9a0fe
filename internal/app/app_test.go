package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CharlissonFagundes/app-gereciamento-estoque/config"
	"github.com/CharlissonFagundes/app-gereciamento-estoque/internal/domain"
	"github.com/CharlissonFagundes/app-gereciamento-estoque/internal/store"
)

func newTestApp(t *testing.T) *Application {
	t.Helper()
	s, err := store.Open(config.DBConfig{Type: "sqlite", Name: "app_test"}, t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	cfg := *config.DefaultAppConfig
	a := NewApplication(&cfg)
	a.OverrideStore(s)
	return a
}

func TestCheckDemoProductsIsIdempotent(t *testing.T) {
	a := newTestApp(t)

	a.checkDemoProducts()
	a.checkDemoProducts()

	var count int64
	require.NoError(t, a.DB().Model(&domain.Product{}).Count(&count).Error)
	require.Equal(t, int64(3), count)
}

func TestCheckLowStockScansWithoutError(t *testing.T) {
	a := newTestApp(t)
	a.checkDemoProducts()

	// drop one product below the threshold and scan
	require.NoError(t, a.DB().Model(&domain.Product{}).
		Where("name = ?", "demo-widget-pro").
		UpdateColumn("quantity", 1).Error)

	a.appConfig.Stock.LowThreshold = 5
	a.checkLowStock()
}
