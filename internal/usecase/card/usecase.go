package card

import (
	"errors"
	"time"

	"github.com/dentalink/loyalty-card-service/internal/codegen"
	"github.com/dentalink/loyalty-card-service/internal/config"
	"github.com/dentalink/loyalty-card-service/internal/domain"
	publisher "github.com/dentalink/loyalty-card-service/internal/infrastructure/kafka"
	"github.com/dentalink/loyalty-card-service/internal/infrastructure/metrics"
	"github.com/dentalink/loyalty-card-service/internal/usecase"
	carddto "github.com/dentalink/loyalty-card-service/internal/usecase/dto/card"
)

type CardUsecase interface {
	GenerateBatch(input carddto.GenerateBatchInput) (*carddto.GenerateBatchOutput, error)
	ResumeBatch(batchID string) (*carddto.GenerateBatchOutput, error)
	DeleteBatch(batchID string) error
	GetBatches(page, limit int) ([]*domain.CardBatch, int64, error)

	AssignCard(input carddto.AssignCardInput) (*domain.Card, error)
	AssignRange(input carddto.AssignRangeInput) (*carddto.AssignRangeOutput, error)

	ActivateCard(input carddto.ActivateCardInput) (*domain.Card, error)
	DeactivateCard(cardID, actor string) (*domain.Card, error)
	ResetCard(cardID, actor string) (*domain.Card, error)
	UpdateCardCode(input carddto.UpdateCardCodeInput) (*domain.Card, error)

	FindCard(reference string) (*domain.Card, error)
	FindCardWithPasscode(reference, passcode string) (*domain.Card, error)
	GetCardsByBatch(batchID string, page, limit int) ([]*domain.Card, int64, error)
	GetCardsByClinic(clinicID string, page, limit int) ([]*domain.Card, int64, error)
	GetAssignmentHistory(cardID string) ([]*domain.AssignmentHistory, error)
	GetCodeHistory(cardID string) ([]*domain.CardCodeHistory, error)
	GetDashboardSummary() (*carddto.DashboardSummary, error)
}

// EventPublisher is the slice of the kafka publisher the card flows need.
type EventPublisher interface {
	PublishCard(topic string, event publisher.CardEvent) error
}

type DefaultCardUsecase struct {
	cardRepo    domain.CardRepository
	batchRepo   domain.BatchRepository
	clinicRepo  domain.ClinicRepository
	historyRepo domain.HistoryRepository
	perks       usecase.PerkUsecase
	versions    usecase.VersionUsecase
	publisher   EventPublisher
	topic       string
	metrics     *metrics.CardMetrics
	generator   *codegen.Generator
	genCfg      config.Generation
	lifeCfg     config.Lifecycle

	now func() time.Time
}

func NewDefaultCardUsecase(
	cardRepo domain.CardRepository,
	batchRepo domain.BatchRepository,
	clinicRepo domain.ClinicRepository,
	historyRepo domain.HistoryRepository,
	perks usecase.PerkUsecase,
	versions usecase.VersionUsecase,
	pub EventPublisher,
	topic string,
	m *metrics.CardMetrics,
	generator *codegen.Generator,
	genCfg config.Generation,
	lifeCfg config.Lifecycle,
) *DefaultCardUsecase {
	return &DefaultCardUsecase{
		cardRepo:    cardRepo,
		batchRepo:   batchRepo,
		clinicRepo:  clinicRepo,
		historyRepo: historyRepo,
		perks:       perks,
		versions:    versions,
		publisher:   pub,
		topic:       topic,
		metrics:     m,
		generator:   generator,
		genCfg:      genCfg,
		lifeCfg:     lifeCfg,
		now:         time.Now,
	}
}

// countErr classifies a failed operation for the error counter.
func (uc *DefaultCardUsecase) countErr(operation string, err error) {
	if err == nil || uc.metrics == nil {
		return
	}
	kind := "internal"
	switch {
	case errors.As(err, new(*domain.ValidationError)):
		kind = "validation"
	case errors.As(err, new(*domain.ConflictError)):
		kind = "conflict"
	case errors.As(err, new(*domain.PartialBatchError)):
		kind = "partial"
	case errors.As(err, new(*domain.InvariantViolation)):
		kind = "invariant"
	case errors.As(err, new(*domain.RangeMismatchError)):
		kind = "range_mismatch"
	case errors.Is(err, domain.ErrCardNotFound):
		kind = "not_found"
	case errors.Is(err, domain.ErrReassignRejected):
		kind = "reassign_rejected"
	}
	uc.metrics.CardErrorsTotal.WithLabelValues(operation, kind).Inc()
}
