package carddto

import "github.com/dentalink/loyalty-card-service/internal/domain"

type GenerateBatchOutput struct {
	Batch *domain.CardBatch
	Cards []*domain.Card
}

type AssignRangeOutput struct {
	Assigned []*domain.Card
	Skipped  []*domain.Card
}

type DashboardSummary struct {
	TotalCards    int64
	ByStatus      map[domain.CardStatus]int64
	ByClinic      map[string]int64
	OpenBatches   int64
	PerksClaimed  int64
	ComponentVers map[domain.Component]int64
}
