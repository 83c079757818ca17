package entity

import (
	"strings"

	world "Stronghold/internal/world/entity"
)

// EnemyOwner 是电脑阵营据点的拥有者名。
const EnemyOwner = "Computer"

type MatchID string

type Phase int8

const (
	PhasePlayerTurn Phase = iota
	PhaseComputerTurn
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhasePlayerTurn:
		return "player_turn"
	case PhaseComputerTurn:
		return "computer_turn"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Outcome 站在人类玩家的角度。
type Outcome int8

const (
	OutcomeNone Outcome = iota
	OutcomeVictory
	OutcomeDefeat
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	default:
		return "none"
	}
}

// Match 是一局对局的全部可变状态：地图、两个据点、回合相位、占领计数。
// 只由对局 actor 访问。
type Match struct {
	id          MatchID
	player      string
	mapName     string
	grid        *world.Grid
	strongholds [2]*world.Stronghold
	phase       Phase
	turn        int
	occupation  [2]int
	captured    bool
	capturedBy  world.Faction
	outcome     Outcome
	dirty       bool
}

// NewMatch 在 grid 上开一局新对局：据点按地图上的据点格定位（缺失时落在两角），
// 双方各自花钱招一名矛兵站在据点上。
func NewMatch(id MatchID, player, mapName string, grid *world.Grid) *Match {
	if grid == nil {
		grid = world.NewGrid()
	}
	m := &Match{id: id, player: player, mapName: mapName, grid: grid, turn: 1}
	for _, f := range []world.Faction{world.Home, world.Enemy} {
		pos, ok := grid.StrongholdPosition(f)
		if !ok {
			pos = defaultStrongholdPosition(f)
			grid.SetCell(pos.X, pos.Y, world.StrongholdCell(f))
		}
		s := world.NewStronghold(ownerName(player, f), f, pos)
		u := world.NewUnit(world.Spearman, pos, s)
		if err := s.Recruit(u); err == nil {
			grid.AddUnit(u)
		}
		m.strongholds[f] = s
	}
	m.dirty = true
	return m
}

func defaultStrongholdPosition(f world.Faction) world.Point {
	if f == world.Home {
		return world.Point{}
	}
	return world.Point{X: world.Width - 1, Y: world.Height - 1}
}

// nameSeparators 是存档行里的分隔符，玩家名里不能出现。
const nameSeparators = `;/\:`

// CheckPlayerName 拒绝含分隔符或与电脑同名（不区分大小写）的名字。
// 存档里的单位按拥有者名字归属，两方名字必须不同。
func CheckPlayerName(name string) error {
	switch {
	case strings.ContainsAny(name, nameSeparators):
		return ErrInvalidPlayerName.WithData("name", name)
	case strings.EqualFold(strings.TrimSpace(name), EnemyOwner):
		return ErrReservedPlayerName.WithData("name", name)
	}
	return nil
}

func ownerName(player string, f world.Faction) string {
	if f == world.Home {
		return player
	}
	return EnemyOwner
}

func (m *Match) ID() MatchID                    { return m.id }
func (m *Match) Player() string                 { return m.player }
func (m *Match) MapName() string                { return m.mapName }
func (m *Match) Grid() *world.Grid              { return m.grid }
func (m *Match) Home() *world.Stronghold        { return m.strongholds[world.Home] }
func (m *Match) Enemy() *world.Stronghold       { return m.strongholds[world.Enemy] }
func (m *Match) Phase() Phase                   { return m.phase }
func (m *Match) Turn() int                      { return m.turn }
func (m *Match) Outcome() Outcome               { return m.outcome }
func (m *Match) Over() bool                     { return m.phase == PhaseGameOver }
func (m *Match) Occupation(f world.Faction) int { return m.occupation[f] }

func (m *Match) Stronghold(f world.Faction) *world.Stronghold {
	return m.strongholds[f]
}

// Active 返回当前相位行动的阵营。
func (m *Match) Active() world.Faction {
	if m.phase == PhaseComputerTurn {
		return world.Enemy
	}
	return world.Home
}

// Advance 结束当前阵营的回合，轮到对方。
func (m *Match) Advance() {
	switch m.phase {
	case PhasePlayerTurn:
		m.phase = PhaseComputerTurn
	case PhaseComputerTurn:
		m.phase = PhasePlayerTurn
		m.turn++
	}
	m.dirty = true
}

func (m *Match) Finish(o Outcome) {
	m.phase = PhaseGameOver
	m.outcome = o
	m.dirty = true
}

// Captured 返回已经攻下对方据点的阵营。
func (m *Match) Captured() (world.Faction, bool) {
	return m.capturedBy, m.captured
}

func (m *Match) SetCaptured(f world.Faction) {
	m.captured, m.capturedBy = true, f
	m.dirty = true
}

// TrackOccupation 在每次回合评估时调用：f 阵营有单位站在对方据点上则计数 +1，否则清零。
// 计数达到 f 据点的占领回合数时立起占领标记并返回 true。
func (m *Match) TrackOccupation(f world.Faction) bool {
	target := m.strongholds[f.Opponent()].Position()
	occupied := false
	for _, u := range m.strongholds[f].Roster() {
		if u.IsAlive() && u.Position() == target {
			occupied = true
			break
		}
	}
	if !occupied {
		m.occupation[f] = 0
		return false
	}
	m.occupation[f]++
	if m.occupation[f] >= m.strongholds[f].CaptureTurns() {
		m.SetCaptured(f)
		return true
	}
	return false
}

func (m *Match) MarkDirty() {
	m.dirty = true
}

func (m *Match) Dirty() bool {
	return m != nil && m.dirty
}

func (m *Match) ClearDirty() {
	if m != nil {
		m.dirty = false
	}
}

func (m *Match) BuildPersistSnapshot(version uint64) (*MatchPersistSnapshot, bool) {
	if m == nil || !m.dirty {
		return nil, false
	}
	return &MatchPersistSnapshot{
		Version: version,
		Player:  m.player,
		State:   m.State(),
	}, true
}
