package usecase_test

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dentalink/loyalty-card-service/internal/domain"
	"github.com/dentalink/loyalty-card-service/internal/infrastructure/postgres/models"
	"github.com/dentalink/loyalty-card-service/internal/infrastructure/postgres/repository"
	"github.com/dentalink/loyalty-card-service/internal/usecase"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.ClinicModel{},
		&models.PerkTemplateModel{},
		&models.ClinicPerkCustomizationModel{},
		&models.CardPerkModel{},
		&models.SystemVersionModel{},
		&models.SessionDraftModel{},
	))
	return db
}

func newPerkFixture(t *testing.T) (usecase.PerkUsecase, usecase.ClinicUsecase, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	versionRepo := repository.NewDefaultVersionRepository(db)
	versions := usecase.NewDefaultVersionUsecase(versionRepo, nil, "", nil)
	clinicRepo := repository.NewDefaultClinicRepository(db)
	perkRepo := repository.NewDefaultPerkRepository(db)
	perks := usecase.NewDefaultPerkUsecase(perkRepo, clinicRepo, versions, nil)
	clinics := usecase.NewDefaultClinicUsecase(clinicRepo, versions)
	return perks, clinics, db
}

func seedClinics(t *testing.T, clinics usecase.ClinicUsecase, codes ...string) []*domain.Clinic {
	t.Helper()
	out := make([]*domain.Clinic, 0, len(codes))
	for _, code := range codes {
		c := &domain.Clinic{ClinicCode: code, Name: "Clinic " + code, RegionCode: "MO"}
		require.NoError(t, clinics.CreateClinic(c))
		out = append(out, c)
	}
	return out
}
