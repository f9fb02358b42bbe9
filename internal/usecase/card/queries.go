package card

import (
	"strconv"

	"github.com/dentalink/loyalty-card-service/internal/codegen"
	"github.com/dentalink/loyalty-card-service/internal/domain"
	carddto "github.com/dentalink/loyalty-card-service/internal/usecase/dto/card"
)

// FindCard resolves any accepted card reference: a control number in any
// historical surface form, or a bare sequence number.
func (uc *DefaultCardUsecase) FindCard(reference string) (*domain.Card, error) {
	canonical, err := codegen.Normalize(reference, codegen.CodeControl)
	if err != nil {
		return nil, err
	}
	if len(canonical) == codegen.SequenceWidth && isAllDigits(canonical) {
		seq, err := strconv.Atoi(canonical)
		if err != nil {
			return nil, &domain.ValidationError{Field: "reference", Value: reference, Reason: "malformed sequence reference"}
		}
		return uc.cardRepo.GetCardBySequence(seq)
	}
	return uc.cardRepo.GetCardByCode(canonical)
}

// FindCardWithPasscode is the activation-time lookup: the reference must
// resolve AND the passcode must match. A wrong passcode reads the same as
// a missing card so the response leaks nothing.
func (uc *DefaultCardUsecase) FindCardWithPasscode(reference, passcode string) (*domain.Card, error) {
	card, err := uc.FindCard(reference)
	if err != nil {
		return nil, err
	}
	normalized, err := codegen.Normalize(passcode, codegen.CodePasscode)
	if err != nil {
		return nil, domain.ErrCardNotFound
	}
	if card.Passcode != normalized {
		return nil, domain.ErrCardNotFound
	}
	return card, nil
}

func (uc *DefaultCardUsecase) GetCardsByBatch(batchID string, page, limit int) ([]*domain.Card, int64, error) {
	return uc.cardRepo.GetCardsByBatch(batchID, page, limit)
}

func (uc *DefaultCardUsecase) GetCardsByClinic(clinicID string, page, limit int) ([]*domain.Card, int64, error) {
	return uc.cardRepo.GetCardsByClinic(clinicID, page, limit)
}

func (uc *DefaultCardUsecase) GetAssignmentHistory(cardID string) ([]*domain.AssignmentHistory, error) {
	return uc.historyRepo.GetAssignmentHistory(cardID)
}

func (uc *DefaultCardUsecase) GetCodeHistory(cardID string) ([]*domain.CardCodeHistory, error) {
	return uc.historyRepo.GetCodeHistory(cardID)
}

// GetDashboardSummary aggregates the counters the admin landing page shows.
func (uc *DefaultCardUsecase) GetDashboardSummary() (*carddto.DashboardSummary, error) {
	summary := &carddto.DashboardSummary{
		ByStatus:      make(map[domain.CardStatus]int64),
		ByClinic:      make(map[string]int64),
		ComponentVers: make(map[domain.Component]int64),
	}

	statuses := []domain.CardStatus{
		domain.StatusUnassigned,
		domain.StatusAssigned,
		domain.StatusActivated,
		domain.StatusSuspended,
	}
	for _, status := range statuses {
		n, err := uc.cardRepo.CountByStatus(status)
		if err != nil {
			return nil, err
		}
		summary.ByStatus[status] = n
		summary.TotalCards += n
		if uc.metrics != nil {
			uc.metrics.CardStatusGauge.WithLabelValues(string(status)).Set(float64(n))
		}
	}

	clinics, err := uc.clinicRepo.GetAllClinics()
	if err != nil {
		return nil, err
	}
	for _, clinic := range clinics {
		n, err := uc.cardRepo.CountByClinic(clinic.ID)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			summary.ByClinic[clinic.ClinicCode] = n
		}
	}

	claimed, err := uc.perks.CountClaimedPerks()
	if err != nil {
		return nil, err
	}
	summary.PerksClaimed = claimed

	incomplete, err := uc.batchRepo.FindIncompleteBatches()
	if err != nil {
		return nil, err
	}
	summary.OpenBatches = int64(len(incomplete))

	versions, err := uc.versions.GetAll()
	if err != nil {
		return nil, err
	}
	for _, v := range versions {
		summary.ComponentVers[v.Component] = v.Version
	}

	return summary, nil
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
