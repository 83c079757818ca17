package entity

import (
	"errors"
	"testing"
)

func TestStronghold_初始状态(t *testing.T) {
	s := NewStronghold("alice", Home, Point{})
	if s.Gold() != 100 || s.Steps() != 10 || s.Score() != 0 {
		t.Fatalf("初始值不符 gold=%d steps=%d score=%d", s.Gold(), s.Steps(), s.Score())
	}
	if !s.HasStructure(Garrison) {
		t.Fatalf("期望自带岗哨")
	}
}

func TestStronghold_Build_酒馆(t *testing.T) {
	s := NewStronghold("alice", Home, Point{})
	st, err := s.Build("  tavern ")
	if err != nil || st != Tavern {
		t.Fatalf("建造失败 st=%v err=%v", st, err)
	}
	if s.Gold() != 95 || s.Score() != 1 || !s.HasStructure(Tavern) {
		t.Fatalf("gold=%d score=%d", s.Gold(), s.Score())
	}
	if _, err := s.Build("Tavern"); !errors.Is(err, ErrAlreadyBuilt) {
		t.Fatalf("期望重复建造失败 err=%v", err)
	}
	if s.Gold() != 95 || s.Score() != 1 {
		t.Fatalf("重复建造不应扣费 gold=%d score=%d", s.Gold(), s.Score())
	}
}

func TestStronghold_Build_名称归一化与未知建筑(t *testing.T) {
	s := NewStronghold("alice", Home, Point{})
	if st, err := s.Build("Crossbow Tower"); err != nil || st != CrossbowTower {
		t.Fatalf("期望识别 Crossbow Tower st=%v err=%v", st, err)
	}
	if _, err := s.Build("castle"); !errors.Is(err, ErrUnknownStructure) {
		t.Fatalf("期望 ErrUnknownStructure err=%v", err)
	}
}

func TestStronghold_Build_金币不足(t *testing.T) {
	s := NewStronghold("alice", Home, Point{})
	s.SpendGold(70)
	if _, err := s.Build("Cathedral"); !errors.Is(err, ErrNotEnoughGold) {
		t.Fatalf("期望 ErrNotEnoughGold err=%v", err)
	}
	if s.Gold() != 30 || s.HasStructure(Cathedral) {
		t.Fatalf("失败不应改动状态")
	}
}

func TestStronghold_Recruit_缺少酒馆不能招英雄(t *testing.T) {
	s := NewStronghold("alice", Home, Point{})
	err := s.Recruit(NewUnit(Hero, s.Position(), s))
	if !errors.Is(err, ErrStructureMissing) {
		t.Fatalf("期望 ErrStructureMissing err=%v", err)
	}
	if s.Gold() != 100 || len(s.Roster()) != 0 {
		t.Fatalf("失败不应改动状态 gold=%d roster=%d", s.Gold(), len(s.Roster()))
	}
}

func TestStronghold_Recruit_成功扣款(t *testing.T) {
	s := NewStronghold("alice", Home, Point{})
	if err := s.Recruit(NewUnit(Spearman, s.Position(), s)); err != nil {
		t.Fatalf("err=%v", err)
	}
	if s.Gold() != 95 || len(s.Roster()) != 1 {
		t.Fatalf("gold=%d roster=%d", s.Gold(), len(s.Roster()))
	}
}

func TestStronghold_Recruit_建筑与兵种一一对应(t *testing.T) {
	for _, tier := range AllTiers() {
		st := RequiredStructure(tier)
		if p := st.Profile(); !p.HasUnlock || p.Unlocks != tier {
			t.Fatalf("兵种 %v 的解锁建筑 %v 不对应", tier, st)
		}
	}
	if Stable.Profile().HasUnlock {
		t.Fatalf("马厩不解锁兵种")
	}
}

func TestStronghold_ResetSteps_幂等(t *testing.T) {
	s := NewStronghold("alice", Home, Point{})
	for _, spend := range []int{0, 3, 10} {
		s.ResetSteps()
		_ = s.SpendSteps(spend)
		s.ResetSteps()
		if s.Steps() != StepsPerTurn {
			t.Fatalf("期望重置为 10 got=%d", s.Steps())
		}
	}
}

func TestStronghold_CaptureTurns(t *testing.T) {
	s := NewStronghold("alice", Home, Point{})
	if s.CaptureTurns() != 2 {
		t.Fatalf("期望 2 got=%d", s.CaptureTurns())
	}
	s.SetCaptureTimeReduced(true)
	if s.CaptureTurns() != 1 {
		t.Fatalf("期望减半为 1 got=%d", s.CaptureTurns())
	}
}

func TestHydrateStronghold_保留岗哨(t *testing.T) {
	s := HydrateStronghold(StrongholdState{Owner: "a", Gold: 40, Score: 3, Steps: 7, Structures: []Structure{Arena}})
	if !s.HasStructure(Garrison) || !s.HasStructure(Arena) || s.Gold() != 40 || s.Steps() != 7 {
		t.Fatalf("恢复结果不符 state=%+v", s.State())
	}
}
