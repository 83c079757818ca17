package mongo

import (
	"context"
	"errors"
	"time"

	"Stronghold/internal/shared/serverconfig"
	"Stronghold/modules/kit/errx"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"
)

// Open 连接存档所在的 MongoDB 并 ping 一次。
func Open(cfg serverconfig.MongoDBConfig, l *zap.Logger) (*mongo.Client, error) {
	if cfg.URI == "" {
		return nil, errx.ErrUnavailable.WithData("store", "mongodb").WithCause(errors.New("mongodb uri is empty"))
	}
	if l == nil {
		l = zap.NewNop()
	}

	timeout := time.Duration(cfg.ConnectTimeoutS) * time.Second
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI).SetAppName("stronghold"))
	if err != nil {
		return nil, errx.ErrUnavailable.WithData("store", "mongodb").WithCause(err)
	}
	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errx.ErrUnavailable.WithData("store", "mongodb").WithCause(err)
	}

	l.Info("open mongodb success",
		zap.String("uri", cfg.URI),
		zap.String("database", cfg.Database),
	)
	return client, nil
}

// Database 取配置里的库，未配置时用 stronghold。
func Database(c *mongo.Client, cfg serverconfig.MongoDBConfig) *mongo.Database {
	name := cfg.Database
	if name == "" {
		name = "stronghold"
	}
	return c.Database(name)
}
