package usecase

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/dentalink/loyalty-card-service/internal/domain"
	"github.com/dentalink/loyalty-card-service/internal/infrastructure/metrics"
	perkdto "github.com/dentalink/loyalty-card-service/internal/usecase/dto/perk"
	"github.com/google/uuid"
)

type PerkUsecase interface {
	CreateTemplate(input perkdto.CreateTemplateInput) (*domain.PerkTemplate, error)
	UpdateTemplate(template *domain.PerkTemplate) error
	DeleteTemplate(templateID string) error
	GetTemplates(page, limit int) ([]*domain.PerkTemplate, int64, error)

	MirrorTemplateToAllClinics(templateID string) (int, error)
	CustomizeForClinic(input perkdto.CustomizeInput) (*domain.ClinicPerkCustomization, error)
	GetClinicPerks(clinicID string) ([]*domain.ClinicPerkCustomization, error)

	GrantDefaultPerks(cardID string) ([]*domain.CardPerk, error)
	GetCardPerks(cardID string) ([]*domain.CardPerk, error)
	ClaimPerk(input perkdto.ClaimPerkInput) (*domain.CardPerk, error)
	ResetPerkClaims(cardID string) error
	RemoveCardPerks(cardID string) error
	CountClaimedPerks() (int64, error)
}

type DefaultPerkUsecase struct {
	perkRepo   domain.PerkRepository
	clinicRepo domain.ClinicRepository
	versions   VersionUsecase
	metrics    *metrics.CardMetrics
}

func NewDefaultPerkUsecase(
	perkRepo domain.PerkRepository,
	clinicRepo domain.ClinicRepository,
	versions VersionUsecase,
	m *metrics.CardMetrics,
) *DefaultPerkUsecase {
	return &DefaultPerkUsecase{
		perkRepo:   perkRepo,
		clinicRepo: clinicRepo,
		versions:   versions,
		metrics:    m,
	}
}

// CreateTemplate persists a new template and mirrors it to every clinic so
// each one starts from an editable copy of the defaults.
func (uc *DefaultPerkUsecase) CreateTemplate(input perkdto.CreateTemplateInput) (*domain.PerkTemplate, error) {
	perkType := strings.ToUpper(strings.TrimSpace(input.PerkType))
	if perkType == "" {
		return nil, &domain.ValidationError{Field: "perk_type", Value: input.PerkType, Reason: "must not be empty"}
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, &domain.ValidationError{Field: "name", Value: input.Name, Reason: "must not be empty"}
	}
	if input.DefaultValue < 0 {
		return nil, &domain.ValidationError{
			Field:  "default_value",
			Value:  strconv.FormatFloat(input.DefaultValue, 'f', -1, 64),
			Reason: "must not be negative",
		}
	}

	now := time.Now()
	template := &domain.PerkTemplate{
		ID:              uuid.New().String(),
		PerkType:        perkType,
		Name:            input.Name,
		DefaultValue:    input.DefaultValue,
		Category:        input.Category,
		IsActive:        true,
		IsSystemDefault: input.IsSystemDefault,
		CreatedBy:       input.CreatedBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.perkRepo.CreateTemplate(template); err != nil {
		return nil, err
	}

	mirrored, err := uc.MirrorTemplateToAllClinics(template.ID)
	if err != nil {
		// Template itself committed; missing mirrors are filled in on the
		// next mirror run.
		slog.Warn("template mirroring incomplete",
			slog.String("template_id", template.ID),
			slog.Int("mirrored", mirrored),
			slog.Any("error", err))
	}

	uc.versions.Bump(domain.ComponentPerks, "template created: "+perkType)
	return template, nil
}

func (uc *DefaultPerkUsecase) UpdateTemplate(template *domain.PerkTemplate) error {
	existing, err := uc.perkRepo.GetTemplateByID(template.ID)
	if err != nil {
		return err
	}
	if existing.IsSystemDefault {
		return domain.ErrTemplateImmutable
	}
	template.UpdatedAt = time.Now()
	if err := uc.perkRepo.UpdateTemplate(template); err != nil {
		return err
	}
	uc.versions.Bump(domain.ComponentPerks, "template updated: "+template.PerkType)
	return nil
}

func (uc *DefaultPerkUsecase) DeleteTemplate(templateID string) error {
	existing, err := uc.perkRepo.GetTemplateByID(templateID)
	if err != nil {
		return err
	}
	if existing.IsSystemDefault {
		return domain.ErrTemplateImmutable
	}
	if err := uc.perkRepo.DeleteTemplate(templateID); err != nil {
		return err
	}
	uc.versions.Bump(domain.ComponentPerks, "template deleted: "+existing.PerkType)
	return nil
}

func (uc *DefaultPerkUsecase) GetTemplates(page, limit int) ([]*domain.PerkTemplate, int64, error) {
	return uc.perkRepo.GetTemplates(page, limit)
}

// MirrorTemplateToAllClinics creates the per-clinic customization rows the
// template is still missing. Rerunnable: clinics that already have a row
// are skipped, concurrent duplicates are absorbed.
func (uc *DefaultPerkUsecase) MirrorTemplateToAllClinics(templateID string) (int, error) {
	template, err := uc.perkRepo.GetTemplateByID(templateID)
	if err != nil {
		return 0, err
	}
	clinics, err := uc.clinicRepo.GetAllClinics()
	if err != nil {
		return 0, err
	}

	created := 0
	for _, clinic := range clinics {
		existing, err := uc.perkRepo.GetCustomization(clinic.ID, templateID)
		if err != nil {
			return created, err
		}
		if existing != nil {
			continue
		}

		now := time.Now()
		customization := &domain.ClinicPerkCustomization{
			ID:          uuid.New().String(),
			ClinicID:    clinic.ID,
			TemplateID:  templateID,
			CustomName:  template.Name,
			CustomValue: template.DefaultValue,
			IsEnabled:   template.IsActive,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := uc.perkRepo.CreateCustomization(customization); err != nil {
			var conflict *domain.ConflictError
			if errors.As(err, &conflict) {
				// Another mirror run got there first.
				continue
			}
			return created, err
		}
		created++
	}
	return created, nil
}

func (uc *DefaultPerkUsecase) CustomizeForClinic(input perkdto.CustomizeInput) (*domain.ClinicPerkCustomization, error) {
	existing, err := uc.perkRepo.GetCustomization(input.ClinicID, input.TemplateID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, &domain.ValidationError{Field: "template_id", Value: input.TemplateID, Reason: "template not mirrored to clinic"}
	}

	existing.CustomName = input.CustomName
	existing.CustomValue = input.CustomValue
	existing.IsEnabled = input.IsEnabled
	existing.RedemptionLimit = input.RedemptionLimit
	existing.ValidFrom = input.ValidFrom
	existing.ValidUntil = input.ValidUntil
	existing.UpdatedAt = time.Now()

	if err := uc.perkRepo.UpdateCustomization(existing); err != nil {
		return nil, err
	}
	uc.versions.Bump(domain.ComponentPerks, "customization updated: "+input.ClinicID)
	return existing, nil
}

func (uc *DefaultPerkUsecase) GetClinicPerks(clinicID string) ([]*domain.ClinicPerkCustomization, error) {
	return uc.perkRepo.GetCustomizationsByClinic(clinicID)
}

// GrantDefaultPerks gives the card every active default perk it does not
// already hold. Asking twice grants nothing the second time, so a repeated
// activation can never duplicate or reset a claimed perk.
func (uc *DefaultPerkUsecase) GrantDefaultPerks(cardID string) ([]*domain.CardPerk, error) {
	templates, err := uc.perkRepo.GetActiveDefaultTemplates()
	if err != nil {
		return nil, err
	}
	existing, err := uc.perkRepo.GetCardPerks(cardID)
	if err != nil {
		return nil, err
	}
	held := make(map[string]bool, len(existing))
	for _, p := range existing {
		held[p.PerkType] = true
	}

	var granted []*domain.CardPerk
	now := time.Now()
	for _, t := range templates {
		if held[t.PerkType] {
			continue
		}
		granted = append(granted, &domain.CardPerk{
			ID:        uuid.New().String(),
			CardID:    cardID,
			PerkType:  t.PerkType,
			Name:      t.Name,
			Value:     t.DefaultValue,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	if len(granted) == 0 {
		return nil, nil
	}
	if err := uc.perkRepo.CreateCardPerks(granted); err != nil {
		return nil, err
	}
	if uc.metrics != nil {
		uc.metrics.PerksGrantedTotal.Add(float64(len(granted)))
	}
	return granted, nil
}

func (uc *DefaultPerkUsecase) GetCardPerks(cardID string) ([]*domain.CardPerk, error) {
	return uc.perkRepo.GetCardPerks(cardID)
}

func (uc *DefaultPerkUsecase) ClaimPerk(input perkdto.ClaimPerkInput) (*domain.CardPerk, error) {
	perks, err := uc.perkRepo.GetCardPerks(input.CardID)
	if err != nil {
		return nil, err
	}
	perkType := strings.ToUpper(strings.TrimSpace(input.PerkType))
	for _, p := range perks {
		if p.PerkType != perkType {
			continue
		}
		if p.Claimed {
			return nil, domain.ErrPerkAlreadyClaimed
		}
		now := time.Now()
		p.Claimed = true
		p.ClaimedBy = input.ClaimedBy
		p.ClaimedAt = &now
		p.UpdatedAt = now
		if err := uc.perkRepo.UpdateCardPerk(p); err != nil {
			return nil, err
		}
		if uc.metrics != nil {
			uc.metrics.PerksClaimedTotal.Inc()
		}
		return p, nil
	}
	return nil, &domain.ValidationError{Field: "perk_type", Value: input.PerkType, Reason: "card does not hold this perk"}
}

func (uc *DefaultPerkUsecase) ResetPerkClaims(cardID string) error {
	return uc.perkRepo.ResetClaims(cardID)
}

func (uc *DefaultPerkUsecase) RemoveCardPerks(cardID string) error {
	return uc.perkRepo.DeleteCardPerks(cardID)
}

func (uc *DefaultPerkUsecase) CountClaimedPerks() (int64, error) {
	return uc.perkRepo.CountClaimed()
}
