package app

import (
	"context"

	"Stronghold/internal/amenity"
	"Stronghold/internal/match/entity"
	"Stronghold/internal/match/service"
)

// StationView 是一个驿站的占用摘要加上当前到访。
type StationView struct {
	amenity.Stats
	Visits []VisitView `json:"visits"`
}

type VisitView struct {
	ID          int64  `json:"id"`
	Visitor     string `json:"visitor"`
	Started     bool   `json:"started"`
	RemainingMs int64  `json:"remaining_ms"`
	Label       string `json:"label,omitempty"`
}

type SpectatorService struct {
	match    MatchQuery
	stations StationQuery
	scores   ScoreQuery
}

func NewSpectatorService(m MatchQuery, st StationQuery, sc ScoreQuery) *SpectatorService {
	return &SpectatorService{match: m, stations: st, scores: sc}
}

func (s *SpectatorService) State(ctx context.Context) (service.MatchView, error) {
	return s.match.State(ctx)
}

// Stations 按固定顺序返回全部驿站。
func (s *SpectatorService) Stations(ctx context.Context) ([]StationView, error) {
	_ = ctx
	out := make([]StationView, 0, len(amenity.AllKinds()))
	for _, k := range amenity.AllKinds() {
		st, ok := s.stations.Station(k)
		if !ok {
			continue
		}
		out = append(out, stationView(st))
	}
	return out, nil
}

func (s *SpectatorService) Station(ctx context.Context, name string) (StationView, error) {
	_ = ctx
	k, ok := amenity.ParseKind(name)
	if !ok {
		return StationView{}, ErrUnknownStation.WithData("station", name)
	}
	st, ok := s.stations.Station(k)
	if !ok {
		return StationView{}, ErrUnknownStation.WithData("station", name)
	}
	return stationView(st), nil
}

func (s *SpectatorService) Leaderboard(ctx context.Context) ([]entity.ScoreEntry, error) {
	rows, err := s.scores.BestScores(ctx)
	if rows == nil {
		rows = []entity.ScoreEntry{}
	}
	return rows, err
}

func stationView(st *amenity.Station) StationView {
	v := StationView{Stats: st.Stats(), Visits: []VisitView{}}
	for _, vi := range st.ActiveVisits() {
		v.Visits = append(v.Visits, VisitView{
			ID:          int64(vi.ID),
			Visitor:     vi.Visitor,
			Started:     vi.Started,
			RemainingMs: vi.Remaining.Milliseconds(),
			Label:       vi.Label,
		})
	}
	return v
}
