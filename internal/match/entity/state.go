package entity

import (
	world "Stronghold/internal/world/entity"
)

// MatchState 是存档的扁平视图：两个据点、全部存活单位、地形。
// 相位与回合数不进存档，读档后总是轮到人类玩家。
type MatchState struct {
	Player      string
	MapName     string
	Strongholds []world.StrongholdState
	Units       []world.UnitState
	Cells       [][]world.CellType
}

func (m *Match) State() MatchState {
	s := MatchState{
		Player:  m.player,
		MapName: m.mapName,
		Cells:   m.grid.Rows(),
	}
	for _, st := range m.strongholds {
		s.Strongholds = append(s.Strongholds, st.State())
	}
	for _, st := range m.strongholds {
		for _, u := range st.Roster() {
			if u.IsAlive() {
				s.Units = append(s.Units, u.State())
			}
		}
	}
	return s
}

// HydrateMatch 从存档重建对局。两个阵营的据点与完整地形缺一不可；
// 找不到主人的单位、越界单位被跳过。
func HydrateMatch(id MatchID, s MatchState) (*Match, error) {
	if len(s.Cells) != world.Height {
		return nil, ErrIncompleteSave.WithData("rows", len(s.Cells))
	}
	grid := world.NewGrid()
	for y, row := range s.Cells {
		if len(row) != world.Width {
			return nil, ErrIncompleteSave.WithData("row", y).WithData("cols", len(row))
		}
		for x, c := range row {
			grid.SetCell(x, y, c)
		}
	}

	m := &Match{id: id, player: s.Player, mapName: s.MapName, grid: grid, turn: 1}
	var seen [2]bool
	for _, st := range s.Strongholds {
		if st.Faction != world.Home && st.Faction != world.Enemy {
			continue
		}
		m.strongholds[st.Faction] = world.HydrateStronghold(st)
		seen[st.Faction] = true
	}
	if !seen[world.Home] || !seen[world.Enemy] {
		return nil, ErrIncompleteSave.WithData("strongholds", len(s.Strongholds))
	}
	if m.player == "" {
		m.player = m.Home().Owner()
	}

	for _, us := range s.Units {
		owner := m.ownerOf(us.Owner)
		if owner == nil || !us.Tier.Valid() || us.HP <= 0 || !grid.InBounds(us.Pos.X, us.Pos.Y) {
			continue
		}
		u := world.NewUnit(us.Tier, us.Pos, owner)
		u.SetHP(us.HP)
		owner.Enlist(u)
		grid.AddUnit(u)
	}
	return m, nil
}

// ownerOf 按名字找据点。玩家名经 CheckPlayerName 校验，不会与电脑重名。
func (m *Match) ownerOf(name string) *world.Stronghold {
	for _, st := range m.strongholds {
		if st.Owner() == name {
			return st
		}
	}
	return nil
}
