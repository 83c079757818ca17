package service

import (
	"Stronghold/internal/match/entity"
	world "Stronghold/internal/world/entity"
)

// MatchView 是对局的只读展示快照，控制台与观战接口共用。
type MatchView struct {
	MatchID         string         `json:"match_id"`
	Player          string         `json:"player"`
	Map             string         `json:"map"`
	Phase           string         `json:"phase"`
	Turn            int            `json:"turn"`
	Outcome         string         `json:"outcome"`
	Rows            []string       `json:"rows"`
	Home            StrongholdView `json:"home"`
	Enemy           StrongholdView `json:"enemy"`
	DrunkardOffered bool           `json:"drunkard_offered"`
}

type StrongholdView struct {
	Owner        string     `json:"owner"`
	X            int        `json:"x"`
	Y            int        `json:"y"`
	Gold         int        `json:"gold"`
	Score        int        `json:"score"`
	Steps        int        `json:"steps"`
	Structures   []string   `json:"structures"`
	CaptureTurns int        `json:"capture_turns"`
	Occupation   int        `json:"occupation"`
	Units        []UnitView `json:"units"`
}

type UnitView struct {
	Tier     string `json:"tier"`
	Glyph    string `json:"glyph"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	HP       int    `json:"hp"`
	Movement int    `json:"movement"`
}

func (e *Engine) View() MatchView {
	m := e.m
	return MatchView{
		MatchID:         string(m.ID()),
		Player:          m.Player(),
		Map:             m.MapName(),
		Phase:           m.Phase().String(),
		Turn:            m.Turn(),
		Outcome:         m.Outcome().String(),
		Rows:            m.Grid().Render(),
		Home:            strongholdView(m, world.Home),
		Enemy:           strongholdView(m, world.Enemy),
		DrunkardOffered: e.DrunkardOffered(),
	}
}

func strongholdView(m *entity.Match, f world.Faction) StrongholdView {
	s := m.Stronghold(f)
	v := StrongholdView{
		Owner:        s.Owner(),
		X:            s.Position().X,
		Y:            s.Position().Y,
		Gold:         s.Gold(),
		Score:        s.Score(),
		Steps:        s.Steps(),
		CaptureTurns: s.CaptureTurns(),
		Occupation:   m.Occupation(f),
	}
	for _, st := range s.Structures() {
		v.Structures = append(v.Structures, st.String())
	}
	for _, u := range s.Roster() {
		if !u.IsAlive() {
			continue
		}
		p := u.Position()
		v.Units = append(v.Units, UnitView{
			Tier:     u.Name(),
			Glyph:    string(u.Glyph()),
			X:        p.X,
			Y:        p.Y,
			HP:       u.HP(),
			Movement: u.Movement(),
		})
	}
	return v
}
