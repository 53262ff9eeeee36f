package configs

import (
	"fmt"
	"net"
	"time"

	sqldriver "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func (e ENV) DSN() string {
	cfg := sqldriver.NewConfig()
	cfg.User = e.DBUser
	cfg.Passwd = e.DBPassword
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(e.DBHost, e.DBPort)
	cfg.DBName = e.DBName
	cfg.ParseTime = true
	cfg.Loc = time.Local
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}

func OpenConnection(env ENV, log *zap.SugaredLogger) (*gorm.DB, error) {
	maxRetries := env.DBRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	retryDelay := env.DBRetryDelay

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		log.Infof("Attempting to connect to database %s@%s:%s (attempt %d/%d)", env.DBName, env.DBHost, env.DBPort, i+1, maxRetries)
		db, err := gorm.Open(mysql.Open(env.DSN()), &gorm.Config{})
		if err == nil {
			sqlDB, pingErr := db.DB()
			if pingErr == nil {
				pingErr = sqlDB.Ping()
				if pingErr == nil {
					log.Info("Database connection successful")
					return db, nil
				}
			}
			lastErr = pingErr
			log.Warnf("Failed to ping database: %v. Retrying in %v...", pingErr, retryDelay)
		} else {
			lastErr = err
			log.Warnf("Failed to open GORM connection: %v. Retrying in %v...", err, retryDelay)
		}

		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}

	return nil, fmt.Errorf("failed to connect to the database after %d retries: %w", maxRetries, lastErr)
}
