package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"Stronghold/internal/shared/logs"
	"Stronghold/internal/shared/serverconfig"
	"Stronghold/modules/kit/errx"
)

// Open 打开排行榜所在的 MySQL。
// 连接失败统一返回 errx.ErrUnavailable。
func Open(cfg serverconfig.MySQLConfig) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		Logger: logs.NewLeaderboardSQLLogger(nil, logger.Warn, 200*time.Millisecond),
	}

	// username:password@protocol(address)/dbname?charset=utf8&parseTime=True&loc=Local
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8&parseTime=True&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
	)
	db, err := gorm.Open(mysql.Open(dsn), gcfg)
	if err != nil {
		return nil, unavailable(cfg, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, unavailable(cfg, err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxConn)
	sqlDB.SetMaxIdleConns(cfg.MaxIdle)

	logs.Info("open db success",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("db", cfg.DBName),
		zap.String("user", cfg.User),
	)
	return db, nil
}

func unavailable(cfg serverconfig.MySQLConfig, err error) error {
	return errx.ErrUnavailable.WithDataMap(map[string]any{
		"store": "mysql",
		"host":  cfg.Host,
		"db":    cfg.DBName,
	}).WithCause(err)
}
