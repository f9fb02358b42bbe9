package card

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dentalink/loyalty-card-service/internal/codegen"
	"github.com/dentalink/loyalty-card-service/internal/config"
	"github.com/dentalink/loyalty-card-service/internal/domain"
	"github.com/dentalink/loyalty-card-service/internal/infrastructure/postgres/models"
	"github.com/dentalink/loyalty-card-service/internal/infrastructure/postgres/repository"
	"github.com/dentalink/loyalty-card-service/internal/usecase"
	"github.com/google/uuid"
)

type testEnv struct {
	db       *gorm.DB
	cards    *DefaultCardUsecase
	perks    usecase.PerkUsecase
	versions usecase.VersionUsecase
	clinics  domain.ClinicRepository
	batches  domain.BatchRepository
	history  domain.HistoryRepository
	now      time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.ClinicModel{},
		&models.CardBatchModel{},
		&models.CardModel{},
		&models.PerkTemplateModel{},
		&models.ClinicPerkCustomizationModel{},
		&models.CardPerkModel{},
		&models.AssignmentHistoryModel{},
		&models.CardCodeHistoryModel{},
		&models.SystemVersionModel{},
		&models.SessionDraftModel{},
	))

	cardRepo := repository.NewDefaultCardRepository(db)
	batchRepo := repository.NewDefaultBatchRepository(db)
	clinicRepo := repository.NewDefaultClinicRepository(db)
	perkRepo := repository.NewDefaultPerkRepository(db)
	historyRepo := repository.NewDefaultHistoryRepository(db)
	versionRepo := repository.NewDefaultVersionRepository(db)

	versions := usecase.NewDefaultVersionUsecase(versionRepo, nil, "", nil)
	perks := usecase.NewDefaultPerkUsecase(perkRepo, clinicRepo, versions, nil)

	generator, err := codegen.NewGenerator()
	require.NoError(t, err)

	env := &testEnv{
		db:       db,
		perks:    perks,
		versions: versions,
		clinics:  clinicRepo,
		batches:  batchRepo,
		history:  historyRepo,
		now:      time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}

	env.cards = NewDefaultCardUsecase(
		cardRepo,
		batchRepo,
		clinicRepo,
		historyRepo,
		perks,
		versions,
		nil,
		"",
		nil,
		generator,
		config.Generation{MaxSequence: 10000, ChunkSize: 100},
		config.Lifecycle{ActivationTTL: 24 * time.Hour, ReassignPolicy: "reject"},
	)
	// Each read ticks the clock so history rows never share a timestamp.
	env.cards.now = func() time.Time {
		env.now = env.now.Add(time.Second)
		return env.now
	}

	return env
}

func (e *testEnv) seedClinic(t *testing.T, code string, status domain.ClinicStatus) *domain.Clinic {
	t.Helper()
	clinic := &domain.Clinic{
		ID:         uuid.New().String(),
		ClinicCode: code,
		Name:       "Clinic " + code,
		RegionCode: "MO",
		Status:     status,
		CreatedAt:  e.now,
		UpdatedAt:  e.now,
	}
	require.NoError(t, e.clinics.CreateClinic(clinic))
	return clinic
}

func (e *testEnv) seedDefaultTemplate(t *testing.T, perkType string) {
	t.Helper()
	require.NoError(t, e.db.Create(&models.PerkTemplateModel{
		ID:              uuid.New().String(),
		PerkType:        perkType,
		Name:            "Perk " + perkType,
		DefaultValue:    10,
		Category:        "treatment",
		IsActive:        true,
		IsSystemDefault: true,
	}).Error)
}
