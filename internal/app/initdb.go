package app

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/CharlissonFagundes/app-gereciamento-estoque/internal/domain"
)

// checkDemoProducts seeds a small demo catalog on first boot. Existing
// entries are never touched, so re-running it is harmless.
func (a *Application) checkDemoProducts() {
	defaultProducts := []domain.Product{
		{Name: "demo-widget-basic", Description: "Basic demo widget", Quantity: 100, Price: decimal.NewFromFloat(9.99)},
		{Name: "demo-widget-pro", Description: "Professional demo widget", Quantity: 50, Price: decimal.NewFromFloat(24.50)},
		{Name: "demo-addon-support", Description: "Support add-on", Quantity: 200, Price: decimal.NewFromFloat(49.95)},
	}

	for _, p := range defaultProducts {
		var count int64
		a.DB().Model(&domain.Product{}).Where("name = ?", p.Name).Count(&count)
		if count == 0 {
			if err := a.DB().Create(&p).Error; err != nil {
				zap.L().Error("failed to create demo product", zap.String("name", p.Name), zap.Error(err))
			} else {
				zap.L().Info("initialized demo product", zap.String("name", p.Name))
			}
		}
	}
}

// InitDb drops and recreates the managed schema
func (a *Application) InitDb() {
	if err := a.store.DropAll(); err != nil {
		zap.S().Error(err)
	}
	if err := a.DB().Migrator().AutoMigrate(domain.Tables...); err != nil {
		zap.S().Error(err)
	}
}
