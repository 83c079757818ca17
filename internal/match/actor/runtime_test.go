package actor

import (
	"context"
	"testing"
	"time"

	"Stronghold/internal/amenity"
	"Stronghold/internal/match/actors"
	"Stronghold/internal/match/entity"
	"Stronghold/internal/match/infra/persistence/memory"
	"Stronghold/internal/match/service"
	"Stronghold/internal/shared/utils"
	world "Stronghold/internal/world/entity"
)

func newRuntime(t *testing.T) (*Runtime, *memory.SaveRepository) {
	t.Helper()
	saves := memory.NewSaveRepository()
	rt := NewRuntime(actors.Config{
		Match:       entity.NewMatch("m1", "alice", "", world.NewGrid()),
		Dice:        utils.NewSeqDice(0),
		Saves:       saves,
		Leaderboard: memory.NewLeaderboardRepository(),
		FlushEvery:  time.Hour,
	}, time.Second)
	t.Cleanup(rt.Shutdown)
	return rt, saves
}

func TestRuntime_回合流转(t *testing.T) {
	ctx := context.Background()
	rt, _ := newRuntime(t)

	ts, err := rt.BeginTurn(ctx)
	if err != nil || ts.Over || ts.Faction != world.Home {
		t.Fatalf("ts=%+v err=%v", ts, err)
	}
	rep, err := rt.Act(ctx, service.Command{Action: service.ActionRecruit, Tier: world.Spearman})
	if err != nil || len(rep.Rejected) != 0 {
		t.Fatalf("招募失败 rep=%+v err=%v", rep, err)
	}
	if _, err := rt.Act(ctx, service.Command{Action: service.ActionSkip}); CodeFromError(err) != service.CodeNotYourTurn {
		t.Fatalf("电脑回合人类不能行动 got=%v", err)
	}
	if _, err := rt.ComputerTurn(ctx); err != nil {
		t.Fatalf("computer turn: %v", err)
	}

	v, err := rt.State(ctx)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if v.Phase != entity.PhasePlayerTurn.String() || v.Turn != 2 || v.Home.Gold != 90 || len(v.Home.Units) != 2 {
		t.Fatalf("view=%+v", v)
	}
}

func TestRuntime_存档读档(t *testing.T) {
	ctx := context.Background()
	rt, saves := newRuntime(t)

	if err := rt.Load(ctx); CodeFromError(err) != entity.CodeSaveNotFound {
		t.Fatalf("没有存档时读档应报 not found got=%v", err)
	}
	if err := rt.Save(ctx); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := saves.LoadMatch(ctx, "alice"); err != nil {
		t.Fatalf("存档应已写入仓库: %v", err)
	}

	if _, err := rt.Act(ctx, service.Command{Action: service.ActionRecruit, Tier: world.Spearman}); err != nil {
		t.Fatalf("act: %v", err)
	}
	if err := rt.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	v, _ := rt.State(ctx)
	if v.Home.Gold != 95 || v.Phase != entity.PhasePlayerTurn.String() || len(v.Home.Units) != 1 {
		t.Fatalf("读档应回到存档时的状态 view=%+v", v.Home)
	}
}

func TestRuntime_驿站效果(t *testing.T) {
	ctx := context.Background()
	rt, _ := newRuntime(t)
	if err := rt.ApplyEffect(ctx, amenity.Effect{Station: amenity.Lodging, Kind: amenity.EffectHealth, Amount: 3}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	v, _ := rt.State(ctx)
	if v.Home.Units[0].HP != 53 {
		t.Fatalf("住店后应回 3 点血 hp=%d", v.Home.Units[0].HP)
	}
}

type strayMsg struct{}

func TestRuntime_未注册消息立即回错(t *testing.T) {
	rt, _ := newRuntime(t)
	start := time.Now()
	_, err := rt.request(context.Background(), &strayMsg{})
	if CodeFromError(err) != actors.CodeUnhandledMessage {
		t.Fatalf("期望 %s got=%v", actors.CodeUnhandledMessage, err)
	}
	if time.Since(start) >= time.Second {
		t.Fatalf("不应等到 ask 超时才返回")
	}
	// actor 仍然可用
	if _, err := rt.State(context.Background()); err != nil {
		t.Fatalf("state: %v", err)
	}
}
