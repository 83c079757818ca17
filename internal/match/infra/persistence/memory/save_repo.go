package memory

import (
	"context"
	"sync"

	"Stronghold/internal/match/entity"
	"Stronghold/internal/match/infra/persistence/file"
	world "Stronghold/internal/world/entity"

	cmap "github.com/orcaman/concurrent-map"
)

// SaveRepository 进程内存档，测试与不落盘的演示局使用。
type SaveRepository struct {
	saves cmap.ConcurrentMap
}

func NewSaveRepository() *SaveRepository {
	return &SaveRepository{saves: cmap.New()}
}

func (r *SaveRepository) LoadMatch(ctx context.Context, player string) (entity.MatchState, error) {
	_ = ctx
	v, ok := r.saves.Get(player)
	if !ok {
		return entity.MatchState{}, entity.ErrSaveNotFound.WithData("player", player)
	}
	return cloneState(v.(entity.MatchState)), nil
}

func (r *SaveRepository) Snapshot(ctx context.Context, s *entity.MatchPersistSnapshot) error {
	_ = ctx
	if s == nil {
		return nil
	}
	r.saves.Set(s.Player, cloneState(s.State))
	return nil
}

func cloneState(s entity.MatchState) entity.MatchState {
	out := s
	out.Strongholds = append([]world.StrongholdState(nil), s.Strongholds...)
	for i := range out.Strongholds {
		out.Strongholds[i].Structures = append([]world.Structure(nil), s.Strongholds[i].Structures...)
	}
	out.Units = append([]world.UnitState(nil), s.Units...)
	out.Cells = make([][]world.CellType, len(s.Cells))
	for y, row := range s.Cells {
		out.Cells[y] = append([]world.CellType(nil), row...)
	}
	return out
}

type LeaderboardRepository struct {
	mu   sync.Mutex
	rows []entity.ScoreEntry
}

func NewLeaderboardRepository() *LeaderboardRepository {
	return &LeaderboardRepository{}
}

func (r *LeaderboardRepository) Record(ctx context.Context, e entity.ScoreEntry) error {
	_ = ctx
	r.mu.Lock()
	r.rows = append(r.rows, e)
	r.mu.Unlock()
	return nil
}

func (r *LeaderboardRepository) BestScores(ctx context.Context) ([]entity.ScoreEntry, error) {
	_ = ctx
	r.mu.Lock()
	rows := append([]entity.ScoreEntry(nil), r.rows...)
	r.mu.Unlock()
	return file.BestPerUser(rows), nil
}
