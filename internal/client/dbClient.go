package client

import (
	"fmt"
	"storefront-client/internal/config"
	"storefront-client/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitSessionDB opens the durable store holding the session entries.
func InitSessionDB(cfg *config.Session) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "", "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported session db driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}

	if err := db.AutoMigrate(&model.SessionEntry{}); err != nil {
		return nil, fmt.Errorf("migrate session db: %w", err)
	}

	return db, nil
}
