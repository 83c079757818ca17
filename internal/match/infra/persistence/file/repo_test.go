package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"Stronghold/internal/match/entity"
	world "Stronghold/internal/world/entity"
)

func TestSaveRepository_存读档(t *testing.T) {
	ctx := context.Background()
	repo := NewSaveRepository(t.TempDir())
	if _, err := repo.LoadMatch(ctx, "alice"); !errors.Is(err, entity.ErrSaveNotFound) {
		t.Fatalf("没有存档应返回 ErrSaveNotFound got=%v", err)
	}

	st := sampleState(t)
	if err := repo.Snapshot(ctx, &entity.MatchPersistSnapshot{Version: 1, Player: "alice", State: st}); err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if _, err := os.Stat(filepath.Join(repo.dir, "game.alice.csv")); err != nil {
		t.Fatalf("存档文件应存在: %v", err)
	}
	got, err := repo.LoadMatch(ctx, "alice")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := entity.HydrateMatch("m2", got); err != nil {
		t.Fatalf("读出的存档应能重建对局: %v", err)
	}
}

func TestSaveRepository_非法玩家名(t *testing.T) {
	repo := NewSaveRepository(t.TempDir())
	if _, err := repo.LoadMatch(context.Background(), "../etc"); !errors.Is(err, ErrBadName) {
		t.Fatalf("含路径分隔符应拒绝 got=%v", err)
	}
}

func TestLeaderboardRepository_每人最高分(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "rating.csv")
	repo := NewLeaderboardRepository(path)

	best, err := repo.BestScores(ctx)
	if err != nil || len(best) != 0 {
		t.Fatalf("空榜 best=%v err=%v", best, err)
	}
	for _, e := range []entity.ScoreEntry{
		{Username: "alice", Points: 10, Map: "m"},
		{Username: "bob", Points: 30},
		{Username: "alice", Points: 40, Map: "m"},
		{Username: "carol", Points: 30},
	} {
		if err := repo.Record(ctx, e); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	raw, _ := os.ReadFile(path)
	if want := leaderboardHeader + "\n"; string(raw[:len(want)]) != want {
		t.Fatalf("首行应为表头 got=%q", raw)
	}

	best, err = repo.BestScores(ctx)
	if err != nil {
		t.Fatalf("best: %v", err)
	}
	if len(best) != 3 || best[0].Username != "alice" || best[0].Points != 40 || best[1].Username != "bob" || best[2].Username != "carol" {
		t.Fatalf("排序不对 %+v", best)
	}
}

func TestMapRepository_存取与列表(t *testing.T) {
	ctx := context.Background()
	repo := NewMapRepository(t.TempDir())
	cells := blankCells()
	cells[0][0] = world.StrongholdHome
	cells[9][9] = world.StrongholdEnemy
	cells[4][2] = world.Obstacle

	if err := repo.Save(ctx, "river", cells); err != nil {
		t.Fatalf("save: %v", err)
	}
	names, err := repo.List(ctx)
	if err != nil || len(names) != 1 || names[0] != "river" {
		t.Fatalf("list=%v err=%v", names, err)
	}
	got, err := repo.Load(ctx, "river")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got[0][0] != world.StrongholdHome || got[9][9] != world.StrongholdEnemy || got[4][2] != world.Obstacle {
		t.Fatalf("地形不符")
	}
}
