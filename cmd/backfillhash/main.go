// Command backfillhash assigns viewer hashes to bills created before the
// hash scheme, and mirrors them into the old_bills archive so their legacy
// identifiers keep resolving on the public viewer.
//
// Safe to re-run: bills that already carry a hash are skipped, and archive
// rows are upserted by identifier.
package main

import (
	"context"
	"os"

	"saribill/internal/config"
	"saribill/internal/infra"
	"saribill/internal/model"
	"saribill/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database initialization failed")
	}

	ctx := context.Background()
	migrated, skipped, err := backfill(ctx, db)
	if err != nil {
		log.Fatal().Err(err).Msg("backfill failed")
	}
	log.Info().Int("migrated", migrated).Int("skipped", skipped).Msg("backfill complete")
}

func backfill(ctx context.Context, db *gorm.DB) (migrated, skipped int, err error) {
	var bills []model.Bill
	if err := db.WithContext(ctx).Order("id").Find(&bills).Error; err != nil {
		return 0, 0, err
	}

	for i := range bills {
		bill := &bills[i]
		if bill.URLHash != "" {
			skipped++
			continue
		}

		hash, err := allocateFreeHash(ctx, db)
		if err != nil {
			return migrated, skipped, err
		}

		txErr := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&model.Bill{}).
				Where("id = ?", bill.ID).
				Update("url_hash", hash).Error; err != nil {
				return err
			}
			archived := model.OldBill{
				ID:            bill.ID,
				URLHash:       hash,
				Date:          bill.Date,
				CustomerName:  bill.CustomerName,
				CustomerPhone: bill.CustomerPhone,
				Items:         bill.Items,
				TotalAmount:   bill.TotalAmount,
				PaymentMode:   bill.PaymentMode,
				CreatedAt:     bill.CreatedAt,
			}
			return tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).Create(&archived).Error
		})
		if txErr != nil {
			return migrated, skipped, txErr
		}

		migrated++
		log.Info().Str("bill_id", bill.ID).Str("hash", hash).Msg("hash assigned")
	}
	return migrated, skipped, nil
}

func allocateFreeHash(ctx context.Context, db *gorm.DB) (string, error) {
	for {
		hash, err := service.GenerateBillHash()
		if err != nil {
			return "", err
		}
		var used bool
		err = db.WithContext(ctx).Raw(`
			SELECT EXISTS (SELECT 1 FROM bills WHERE url_hash = ?)
			    OR EXISTS (SELECT 1 FROM trash WHERE url_hash = ?)
			    OR EXISTS (SELECT 1 FROM old_bills WHERE url_hash = ?)`,
			hash, hash, hash).Scan(&used).Error
		if err != nil {
			return "", err
		}
		if !used {
			return hash, nil
		}
	}
}
