package port

import (
	"context"

	"Stronghold/internal/match/entity"
	world "Stronghold/internal/world/entity"
)

// SaveRepository 按玩家名保存一局存档，新存档整体覆盖旧存档。
// 没有存档时 LoadMatch 返回 entity.ErrSaveNotFound。
type SaveRepository interface {
	LoadMatch(ctx context.Context, player string) (entity.MatchState, error)
	Snapshot(ctx context.Context, s *entity.MatchPersistSnapshot) error
}

// LeaderboardRepository 每局结束追加一行；BestScores 按玩家取最高分并降序。
type LeaderboardRepository interface {
	Record(ctx context.Context, e entity.ScoreEntry) error
	BestScores(ctx context.Context) ([]entity.ScoreEntry, error)
}

// MapRepository 管理地图定义。
type MapRepository interface {
	List(ctx context.Context) ([]string, error)
	Load(ctx context.Context, name string) ([][]world.CellType, error)
	Save(ctx context.Context, name string, cells [][]world.CellType) error
}
