package background

import (
	"context"
	"log"
	"time"

	"github.com/dentalink/loyalty-card-service/internal/usecase"
	"github.com/dentalink/loyalty-card-service/internal/usecase/card"
)

type BackgroundTasks struct {
	CardUsecase   card.CardUsecase
	DraftUsecase  usecase.DraftUsecase
	SweepInterval time.Duration
}

func NewBackgroundTasks(cardUC card.CardUsecase, draftUC usecase.DraftUsecase, sweepInterval time.Duration) *BackgroundTasks {
	return &BackgroundTasks{
		CardUsecase:   cardUC,
		DraftUsecase:  draftUC,
		SweepInterval: sweepInterval,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.startDraftSweep(ctx)
	go bt.startGaugeRefresh(ctx)
}

func (bt *BackgroundTasks) startDraftSweep(ctx context.Context) {
	ticker := time.NewTicker(bt.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			swept, err := bt.DraftUsecase.SweepExpired()
			if err != nil {
				log.Printf("Draft sweep error: %v\n", err)
				continue
			}
			if swept > 0 {
				log.Printf("Swept %d expired drafts\n", swept)
			}
		}
	}
}

// startGaugeRefresh recomputes the per-status card counts so the exported
// gauges stay current even when nobody opens the dashboard.
func (bt *BackgroundTasks) startGaugeRefresh(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := bt.CardUsecase.GetDashboardSummary(); err != nil {
				log.Printf("Status gauge refresh error: %v\n", err)
			}
		}
	}
}
