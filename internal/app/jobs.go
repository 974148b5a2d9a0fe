package app

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/CharlissonFagundes/app-gereciamento-estoque/internal/domain"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// initJob starts the background scheduler. The only job is the periodic
// low-stock scan; it logs, it never mutates.
func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	if loc == nil {
		loc = time.Local
	}
	a.sched = cron.New(cron.WithParser(cronParser), cron.WithLocation(loc))

	spec := a.appConfig.Stock.CheckCron
	if spec == "" {
		spec = "@every 10m"
	}
	if _, err := a.sched.AddFunc(spec, a.checkLowStock); err != nil {
		zap.L().Error("failed to schedule low-stock check", zap.Error(err))
		return
	}
	a.sched.Start()
}

// checkLowStock reports catalog entries at or below the configured
// threshold so the operator can restock.
func (a *Application) checkLowStock() {
	threshold := a.appConfig.Stock.LowThreshold
	if threshold <= 0 {
		return
	}

	var low []domain.Product
	if err := a.DB().Where("quantity <= ?", threshold).Order("quantity ASC").Find(&low).Error; err != nil {
		zap.L().Error("low-stock scan failed", zap.Error(err))
		return
	}

	for _, p := range low {
		zap.L().Warn("low stock",
			zap.Int64("product_id", p.ID),
			zap.String("name", p.Name),
			zap.Int("quantity", p.Quantity),
			zap.Int("threshold", threshold))
	}
}
