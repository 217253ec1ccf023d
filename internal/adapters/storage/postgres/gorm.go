package postgres

import (
	"database/sql"
	"time"

	"pet-clinic/internal/platform/logger"

	"github.com/pkg/errors"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewGorm monta gorm sobre el pool pgx ya abierto.
func NewGorm(db *sql.DB, log logger.Logger, slowQuery time.Duration) (*gorm.DB, error) {
	gdb, err := gorm.Open(gormpg.New(gormpg.Config{Conn: db}), GormConfig(log, slowQuery))
	if err != nil {
		return nil, errors.Wrap(err, "open gorm")
	}
	return gdb, nil
}

// GormConfig es compartido con los tests (sqlite).
func GormConfig(log logger.Logger, slowQuery time.Duration) *gorm.Config {
	return &gorm.Config{
		Logger:         NewGormLogger(log, slowQuery),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}
}
