package main

import (
	"context"
	"fmt"

	"Stronghold/internal/match/app/port"
	"Stronghold/internal/match/infra/persistence/file"
	"Stronghold/internal/match/infra/persistence/memory"
	"Stronghold/internal/match/infra/persistence/mongodb"
	"Stronghold/internal/match/infra/persistence/mysql"
	"Stronghold/internal/shared/infrastructure/db"
	sharedmongo "Stronghold/internal/shared/infrastructure/mongo"
	"Stronghold/internal/shared/logs"
	"Stronghold/internal/shared/serverconfig"
)

// stores 按 storage 配置选出存档与排行榜的实现。
type stores struct {
	saves       port.SaveRepository
	leaderboard port.LeaderboardRepository
	closers     []func()
}

func (s *stores) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func openStores(ctx context.Context, conf serverconfig.Config) (*stores, error) {
	s := &stores{}
	switch conf.Storage.Saves {
	case "", "file":
		s.saves = file.NewSaveRepository(conf.Game.SavesDir)
	case "memory":
		s.saves = memory.NewSaveRepository()
	case "mongodb":
		client, err := sharedmongo.Open(conf.MongoDB, logs.Logger())
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func() { _ = client.Disconnect(context.Background()) })
		s.saves = mongodb.NewSaveRepository(sharedmongo.Database(client, conf.MongoDB))
	default:
		return nil, fmt.Errorf("unknown storage.saves driver %q", conf.Storage.Saves)
	}

	switch conf.Storage.Leaderboard {
	case "", "file":
		s.leaderboard = file.NewLeaderboardRepository(conf.Game.LeaderboardFile)
	case "memory":
		s.leaderboard = memory.NewLeaderboardRepository()
	case "mysql":
		gormDB, err := db.Open(conf.MySQL)
		if err != nil {
			s.close()
			return nil, err
		}
		if sqlDB, err := gormDB.DB(); err == nil {
			s.closers = append(s.closers, func() { _ = sqlDB.Close() })
		}
		repo := mysql.NewLeaderboardRepository(gormDB)
		if err := repo.Migrate(ctx); err != nil {
			s.close()
			return nil, err
		}
		s.leaderboard = repo
	default:
		s.close()
		return nil, fmt.Errorf("unknown storage.leaderboard driver %q", conf.Storage.Leaderboard)
	}
	return s, nil
}
