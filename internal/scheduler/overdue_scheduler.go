package scheduler

import (
	"time"

	"github.com/Sreemathipalanisamy/gst-service-register/internal/app/service"
	"github.com/Sreemathipalanisamy/gst-service-register/pkg/logger"
	"github.com/robfig/cron/v3"
)

// OverdueScheduler periodically flags saved, unpaid invoices whose issue date
// has aged past the grace period.
type OverdueScheduler struct {
	cron           *cron.Cron
	invoiceService service.InvoiceService
	spec           string
	grace          time.Duration
}

func NewOverdueScheduler(invoiceService service.InvoiceService, spec string, grace time.Duration) *OverdueScheduler {
	return &OverdueScheduler{
		cron:           cron.New(),
		invoiceService: invoiceService,
		spec:           spec,
		grace:          grace,
	}
}

func (s *OverdueScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		logger.Info("Starting scheduled overdue sweep", map[string]interface{}{
			"grace": s.grace.String(),
		})

		flipped, err := s.invoiceService.SweepOverdue(s.grace)
		if err != nil {
			logger.Error("Overdue sweep failed", err)
			return
		}

		logger.Info("Overdue sweep finished", map[string]interface{}{
			"flipped": flipped,
		})
	})
	if err != nil {
		logger.Error("Failed to register overdue sweep cron job", err)
		return err
	}

	s.cron.Start()
	logger.Info("Overdue scheduler started", map[string]interface{}{
		"spec": s.spec,
	})

	return nil
}

func (s *OverdueScheduler) Stop() {
	logger.Info("Stopping overdue scheduler...", nil)
	s.cron.Stop()
	logger.Info("Overdue scheduler stopped", nil)
}
