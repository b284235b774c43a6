package db

import (
	"github.com/habiliai/shopagents/config"
	"github.com/habiliai/shopagents/errors"
	"github.com/habiliai/shopagents/internal/mylog"
	"github.com/jcooky/go-din"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func OpenDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return db, nil
}

// OpenMemoryDB opens a private in-memory database; each call gets its own.
func OpenMemoryDB() (*gorm.DB, error) {
	db, err := OpenDB("file::memory:")
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get db")
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

func CloseDB(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrapf(err, "failed to get db")
	}
	if err := sqlDB.Close(); err != nil {
		return errors.Wrapf(err, "failed to close db")
	}

	return nil
}

func init() {
	din.RegisterT(func(c *din.Container) (*gorm.DB, error) {
		logger, err := din.GetT[*mylog.Logger](c)
		if err != nil {
			return nil, err
		}

		cfg, err := din.GetT[*config.RuntimeConfig](c)
		if err != nil {
			return nil, err
		}

		var db *gorm.DB
		if c.Env == din.EnvTest {
			db, err = OpenMemoryDB()
		} else {
			logger.Info("initialize database", "path", cfg.DatabasePath)
			db, err = OpenDB(cfg.DatabasePath)
		}
		if err != nil {
			return nil, err
		}

		go func() {
			<-c.Done()
			if err := CloseDB(db); err != nil {
				logger.Warn("failed to close database", mylog.Err(err))
			}
		}()

		return db, nil
	})
}
