package app

import (
	"context"

	"Stronghold/internal/amenity"
	"Stronghold/internal/match/entity"
	"Stronghold/internal/match/service"
)

// MatchQuery 读取当前对局的展示快照（由 actor runtime 实现）。
type MatchQuery interface {
	State(ctx context.Context) (service.MatchView, error)
}

// StationQuery 读取某个驿站的占用情况。
type StationQuery interface {
	Station(k amenity.Kind) (*amenity.Station, bool)
}

type ScoreQuery interface {
	BestScores(ctx context.Context) ([]entity.ScoreEntry, error)
}
