package usecase

import (
	"log/slog"
	"time"

	"github.com/dentalink/loyalty-card-service/internal/domain"
	publisher "github.com/dentalink/loyalty-card-service/internal/infrastructure/kafka"
	"github.com/dentalink/loyalty-card-service/internal/infrastructure/metrics"
)

type VersionUsecase interface {
	Bump(component domain.Component, description string) (int64, error)
	Get(component domain.Component) (*domain.SystemVersion, error)
	GetAll() ([]*domain.SystemVersion, error)
}

type VersionPublisher interface {
	PublishVersion(topic string, event publisher.VersionEvent) error
}

type DefaultVersionUsecase struct {
	versionRepo domain.VersionRepository
	publisher   VersionPublisher
	topic       string
	metrics     *metrics.CardMetrics
}

func NewDefaultVersionUsecase(
	versionRepo domain.VersionRepository,
	pub VersionPublisher,
	topic string,
	m *metrics.CardMetrics,
) *DefaultVersionUsecase {
	return &DefaultVersionUsecase{
		versionRepo: versionRepo,
		publisher:   pub,
		topic:       topic,
		metrics:     m,
	}
}

// Bump increments the component counter and announces the new value.
// A failed announcement is logged and swallowed: the bump is already
// committed and pollers will pick it up on the next cycle anyway.
func (uc *DefaultVersionUsecase) Bump(component domain.Component, description string) (int64, error) {
	version, err := uc.versionRepo.Bump(component, description)
	if err != nil {
		return 0, err
	}

	if uc.metrics != nil {
		uc.metrics.VersionBumpsTotal.WithLabelValues(string(component)).Inc()
	}

	if uc.publisher != nil {
		event := publisher.VersionEvent{
			Component:   string(component),
			Version:     version,
			Description: description,
			OccurredAt:  time.Now(),
		}
		if err := uc.publisher.PublishVersion(uc.topic, event); err != nil {
			slog.Warn("failed to publish version event",
				slog.String("component", string(component)),
				slog.Any("error", err))
		}
	}

	return version, nil
}

func (uc *DefaultVersionUsecase) Get(component domain.Component) (*domain.SystemVersion, error) {
	return uc.versionRepo.Get(component)
}

func (uc *DefaultVersionUsecase) GetAll() ([]*domain.SystemVersion, error) {
	return uc.versionRepo.GetAll()
}
