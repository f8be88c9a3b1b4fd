package repository

import (
	"context"
	"fmt"

	"github.com/example/shopadmin/pkg/config"
	"github.com/example/shopadmin/pkg/models"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// Open connects to the configured database and migrates every model.
func Open(cfg *config.DatabaseConfig, logger *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.DSN())
	case "postgres":
		dialector = postgres.Open(cfg.DSN())
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.Driver == "sqlite" {
		// one connection keeps an in-memory database alive and shared
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	logger.Info("Database ready", zap.String("driver", cfg.Driver))
	return db, nil
}

// Seed loads the sample records into every empty table.
func Seed(ctx context.Context, db *gorm.DB) error {
	tx := db.WithContext(ctx)
	var (
		categories = models.SeedCategories()
		users      = models.SeedUsers()
		products   = models.SeedProducts()
		orders     = models.SeedOrders()
		payments   = models.SeedPayments()
		promotions = models.SeedPromotions()
		reviews    = models.SeedReviews()
	)
	seeds := []struct {
		model schema.Tabler
		rows  any
	}{
		{&models.Category{}, &categories},
		{&models.User{}, &users},
		{&models.Product{}, &products},
		{&models.Order{}, &orders},
		{&models.Payment{}, &payments},
		{&models.Promotion{}, &promotions},
		{&models.Review{}, &reviews},
	}
	for _, s := range seeds {
		var count int64
		if err := tx.Model(s.model).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count rows: %w", err)
		}
		if count > 0 {
			continue
		}
		if err := tx.Create(s.rows).Error; err != nil {
			return fmt.Errorf("failed to seed: %w", err)
		}
		if tx.Dialector.Name() == "postgres" {
			if err := syncSequence(tx, s.model.TableName()).Error; err != nil {
				return fmt.Errorf("failed to sync %s id sequence: %w", s.model.TableName(), err)
			}
		}
	}
	return nil
}

// syncSequence moves a postgres serial past the ids inserted explicitly by
// Seed, so the next insert does not reuse id 1.
func syncSequence(tx *gorm.DB, table string) *gorm.DB {
	return tx.Exec("SELECT setval(pg_get_serial_sequence(?, 'id'), (SELECT MAX(id) FROM ?))", table, clause.Table{Name: table})
}
