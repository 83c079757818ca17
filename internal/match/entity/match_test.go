package entity

import (
	"errors"
	"testing"

	"Stronghold/internal/shared/utils"
	world "Stronghold/internal/world/entity"
)

func TestNewMatch_初始状态(t *testing.T) {
	m := NewMatch("m1", "alice", "", world.GenerateGrid(utils.NewDice(3)))
	if m.Home().Gold() != 95 || m.Enemy().Gold() != 95 {
		t.Fatalf("开局招一名矛兵后应剩 95 金 home=%d enemy=%d", m.Home().Gold(), m.Enemy().Gold())
	}
	if m.Home().LivingCount() != 1 || m.Enemy().LivingCount() != 1 {
		t.Fatalf("双方应各有一名单位")
	}
	if u := m.Grid().UnitAt(0, 0); u == nil || u.Tier() != world.Spearman || u.Faction() != world.Home {
		t.Fatalf("人类矛兵应站在 (0,0)")
	}
	if m.Enemy().Owner() != EnemyOwner || m.Home().Owner() != "alice" {
		t.Fatalf("owner 不符 home=%s enemy=%s", m.Home().Owner(), m.Enemy().Owner())
	}
	if m.Phase() != PhasePlayerTurn || m.Turn() != 1 || !m.Dirty() {
		t.Fatalf("phase=%v turn=%d dirty=%v", m.Phase(), m.Turn(), m.Dirty())
	}
}

func TestNewMatch_空地图补据点(t *testing.T) {
	m := NewMatch("m1", "bob", "", world.NewGrid())
	if c, _ := m.Grid().Cell(9, 9); c != world.StrongholdEnemy {
		t.Fatalf("缺失的电脑据点应补在 (9,9) got=%v", c)
	}
}

func TestMatch_Advance(t *testing.T) {
	m := NewMatch("m1", "p", "", world.NewGrid())
	m.Advance()
	if m.Phase() != PhaseComputerTurn || m.Active() != world.Enemy || m.Turn() != 1 {
		t.Fatalf("phase=%v turn=%d", m.Phase(), m.Turn())
	}
	m.Advance()
	if m.Phase() != PhasePlayerTurn || m.Turn() != 2 {
		t.Fatalf("phase=%v turn=%d", m.Phase(), m.Turn())
	}
	m.Finish(OutcomeDefeat)
	m.Advance()
	if !m.Over() || m.Outcome() != OutcomeDefeat {
		t.Fatalf("结束后不再推进 phase=%v", m.Phase())
	}
}

func TestMatch_TrackOccupation_连续占领(t *testing.T) {
	m := NewMatch("m1", "p", "", world.NewGrid())
	u := world.NewUnit(world.Swordsman, world.Point{X: 9, Y: 9}, m.Home())
	m.Home().Enlist(u)
	m.Grid().AddUnit(u)

	if m.TrackOccupation(world.Home) {
		t.Fatalf("第一次评估不应攻下")
	}
	if !m.TrackOccupation(world.Home) {
		t.Fatalf("连续两次评估应攻下")
	}
	if f, ok := m.Captured(); !ok || f != world.Home {
		t.Fatalf("captured=%v %v", f, ok)
	}
}

func TestMatch_TrackOccupation_离开清零与缩短(t *testing.T) {
	m := NewMatch("m1", "p", "", world.NewGrid())
	u := world.NewUnit(world.Swordsman, world.Point{X: 9, Y: 9}, m.Home())
	m.Home().Enlist(u)
	m.Grid().AddUnit(u)

	m.TrackOccupation(world.Home)
	u.TakeDamage(1000)
	m.TrackOccupation(world.Home)
	if m.Occupation(world.Home) != 0 {
		t.Fatalf("没有单位在场时应清零 got=%d", m.Occupation(world.Home))
	}

	u2 := world.NewUnit(world.Spearman, world.Point{X: 9, Y: 9}, m.Home())
	m.Home().Enlist(u2)
	m.Home().SetCaptureTimeReduced(true)
	if !m.TrackOccupation(world.Home) {
		t.Fatalf("占领时间缩短后一次评估即可攻下")
	}
}

func TestMatch_State_往返(t *testing.T) {
	m := NewMatch("m1", "alice", "arena", world.GenerateGrid(utils.NewDice(11)))
	if _, err := m.Home().Build("Tavern"); err != nil {
		t.Fatalf("build err=%v", err)
	}
	hero := world.NewUnit(world.Hero, world.Point{X: 0, Y: 0}, m.Home())
	if err := m.Home().Recruit(hero); err != nil {
		t.Fatalf("recruit err=%v", err)
	}
	m.Grid().AddUnit(hero)
	hero.TakeDamage(15)
	_ = m.Home().SpendSteps(3)

	got, err := HydrateMatch("m2", m.State())
	if err != nil {
		t.Fatalf("hydrate err=%v", err)
	}
	for _, f := range []world.Faction{world.Home, world.Enemy} {
		a, b := m.Stronghold(f).State(), got.Stronghold(f).State()
		if a.Gold != b.Gold || a.Score != b.Score || a.Steps != b.Steps || a.Owner != b.Owner || len(a.Structures) != len(b.Structures) {
			t.Fatalf("%s 据点不一致 want=%+v got=%+v", f, a, b)
		}
	}
	want, have := m.State().Units, got.State().Units
	if len(want) != len(have) {
		t.Fatalf("单位数不一致 want=%d got=%d", len(want), len(have))
	}
	for i := range want {
		if want[i] != have[i] {
			t.Fatalf("单位 %d 不一致 want=%+v got=%+v", i, want[i], have[i])
		}
	}
	if got.Grid().Render()[5] != m.Grid().Render()[5] {
		t.Fatalf("地形不一致")
	}
	if got.Player() != "alice" || got.MapName() != "arena" {
		t.Fatalf("player=%s map=%s", got.Player(), got.MapName())
	}
}

func TestHydrateMatch_缺据点或地形(t *testing.T) {
	s := NewMatch("m1", "p", "", world.NewGrid()).State()

	noEnemy := s
	noEnemy.Strongholds = s.Strongholds[:1]
	if _, err := HydrateMatch("x", noEnemy); !errors.Is(err, ErrIncompleteSave) {
		t.Fatalf("期望 ErrIncompleteSave got=%v", err)
	}

	noMap := s
	noMap.Cells = nil
	if _, err := HydrateMatch("x", noMap); !errors.Is(err, ErrIncompleteSave) {
		t.Fatalf("期望 ErrIncompleteSave got=%v", err)
	}
}

func TestHydrateMatch_跳过无主单位(t *testing.T) {
	s := NewMatch("m1", "p", "", world.NewGrid()).State()
	s.Units = append(s.Units, world.UnitState{Tier: world.Hero, Pos: world.Point{X: 3, Y: 3}, HP: 10, Owner: "ghost"})
	m, err := HydrateMatch("x", s)
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if m.Grid().UnitAt(3, 3) != nil {
		t.Fatalf("无主单位应被跳过")
	}
}

func TestCheckPlayerName(t *testing.T) {
	cases := []struct {
		name string
		want error
	}{
		{"alice", nil},
		{"Computer", ErrReservedPlayerName},
		{" computer ", ErrReservedPlayerName},
		{"a;b", ErrInvalidPlayerName},
		{`c:\x`, ErrInvalidPlayerName},
	}
	for _, c := range cases {
		err := CheckPlayerName(c.name)
		if c.want == nil && err != nil || c.want != nil && !errors.Is(err, c.want) {
			t.Fatalf("%q 期望 %v got=%v", c.name, c.want, err)
		}
	}
}
