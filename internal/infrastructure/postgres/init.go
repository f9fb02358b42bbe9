package postgres

import (
	"log"

	"github.com/dentalink/loyalty-card-service/internal/config"
	"github.com/dentalink/loyalty-card-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.CardConfig) *gorm.DB {
	dsn := cfg.CardDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
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
	)

	return db
}
