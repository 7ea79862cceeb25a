package db

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/beanpeso/costing-app/internal/models"

	migrate "github.com/golang-migrate/migrate/v4"
	// The following blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func ConnectAndMigrate(dsn string) (*gorm.DB, error) {
	dsn = NormalizeDSN(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_DSN is empty, check the environment configuration")
	}
	var db *gorm.DB
	var err error
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}
	dialector := gorm.Dialector(sqlite.Open(dsn))
	if IsPostgresDSN(dsn) {
		dialector = postgres.Open(dsn)
	}
	for i := 0; i < 10; i++ {
		db, err = gorm.Open(dialector, cfg)
		if err == nil {
			break
		}
		fmt.Println("Retrying DB connection...", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}

	// Basic connectivity test
	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}

	// Print masked DSN once for diagnostics (before migrations for visibility)
	masked := dsn
	if strings.Contains(masked, "password=") {
		re := regexp.MustCompile(`(password=)([^\s]+)`)
		masked = re.ReplaceAllString(masked, `${1}***`)
	}
	fmt.Println("[DB] Using DSN:", masked)
	// If MIGRATIONS=1 (or true) we run sql migrations via golang-migrate
	// (postgres only); otherwise keep the AutoMigrate fallback (dev convenience).
	if v := strings.ToLower(os.Getenv("MIGRATIONS")); v == "1" || v == "true" || v == "yes" {
		if !IsPostgresDSN(dsn) {
			return nil, errors.New("MIGRATIONS=1 requires a postgres DSN; sqlite uses AutoMigrate")
		}
		if migErr := runSQLMigrations(dsn); migErr != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", migErr)
		}
	} else {
		modelsToMigrate := []interface{}{
			&models.Ingredient{}, &models.Recipe{}, &models.RecipeIngredient{}, &models.OperatingExpense{}, &models.BusinessSettings{},
		}
		for _, m := range modelsToMigrate {
			if migErr := db.AutoMigrate(m); migErr != nil {
				return nil, fmt.Errorf("automigrate %T: %w", m, migErr)
			}
		}
	}

	// sanity check: ensure required core tables exist
	for _, table := range []string{"ingredients", "recipes", "recipe_ingredients", "operating_expenses", "business_settings"} {
		if !db.Migrator().HasTable(table) {
			return nil, errors.New("missing table after migration: " + table)
		}
	}
	// Seeding only when explicitly requested (e.g. development) via DB_SEED=1|true
	if v := strings.ToLower(os.Getenv("DB_SEED")); v == "1" || v == "true" || v == "yes" {
		seed(db)
	}
	return db, nil
}

// seed inserts a baseline settings record when none exists so the expense
// allocation endpoints work out of the box. Idempotent.
func seed(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.BusinessSettings{}).Count(&count).Error; err != nil || count > 0 {
		return
	}
	db.Create(&models.BusinessSettings{ExpectedMonthlySales: 1000, WorkingDaysPerMonth: 26})
}

// runSQLMigrations executes migrations in ./migrations using golang-migrate file source.
func runSQLMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
