package entity

import (
	"testing"

	"Stronghold/internal/shared/utils"
)

func TestNewGrid_全草地(t *testing.T) {
	g := NewGrid()
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if c, _ := g.Cell(x, y); c != Grass {
				t.Fatalf("期望 (%d,%d) 为草地 got=%v", x, y, c)
			}
		}
	}
}

func TestGenerateGrid_布局(t *testing.T) {
	g := GenerateGrid(utils.NewDice(7))
	if c, _ := g.Cell(0, 0); c != StrongholdHome {
		t.Fatalf("期望 (0,0) 为人类据点 got=%v", c)
	}
	if c, _ := g.Cell(9, 9); c != StrongholdEnemy {
		t.Fatalf("期望 (9,9) 为电脑据点 got=%v", c)
	}
	for i := 1; i < 9; i++ {
		if !g.IsRoad(i, i) {
			t.Fatalf("期望对角线 (%d,%d) 为道路", i, i)
		}
	}
	obstacles := 0
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			c, _ := g.Cell(x, y)
			switch c {
			case Obstacle:
				obstacles++
			case ZoneHome:
				if x >= ZoneSize || y >= ZoneSize {
					t.Fatalf("人类领地越出角落 (%d,%d)", x, y)
				}
			case ZoneEnemy:
				if x < Width-ZoneSize || y < Height-ZoneSize {
					t.Fatalf("电脑领地越出角落 (%d,%d)", x, y)
				}
			}
		}
	}
	if obstacles != ObstacleCount {
		t.Fatalf("期望 %d 个障碍 got=%d", ObstacleCount, obstacles)
	}
}

func TestGrid_IsWalkable(t *testing.T) {
	g := NewGrid()
	g.SetCell(2, 3, Obstacle)
	if g.IsWalkable(2, 3) {
		t.Fatalf("障碍不可通行")
	}
	if g.IsWalkable(-1, 0) || g.IsWalkable(0, Height) {
		t.Fatalf("越界不可通行")
	}
	g.SetCell(4, 4, StrongholdEnemy)
	if !g.IsWalkable(4, 4) {
		t.Fatalf("据点格可通行")
	}
}

func TestGrid_MovementStepCost_双方不对称(t *testing.T) {
	g := NewGrid()
	g.SetCell(1, 1, Road)
	g.SetCell(2, 2, ZoneHome)
	g.SetCell(7, 7, ZoneEnemy)
	cases := []struct {
		x, y int
		f    Faction
		want int
	}{
		{1, 1, Home, 0}, {1, 1, Enemy, 0},
		{2, 2, Home, 5}, {2, 2, Enemy, 10},
		{7, 7, Home, 10}, {7, 7, Enemy, 5},
		{5, 0, Home, 1}, {5, 0, Enemy, 1},
	}
	for _, c := range cases {
		if got := g.MovementStepCost(c.x, c.y, c.f); got != c.want {
			t.Fatalf("(%d,%d) %v 期望 %d got=%d", c.x, c.y, c.f, c.want, got)
		}
	}
}

func TestGrid_MovementStepCost_按角落坐标计算(t *testing.T) {
	generated := GenerateGrid(utils.NewSeqDice(0))
	cases := []struct {
		name string
		g    *Grid
		x, y int
		f    Faction
		want int
	}{
		{"敌方据点", withCell(generated, 9, 9, StrongholdEnemy), 9, 9, Home, StepCostFoeZone},
		{"敌方据点-电脑", withCell(generated, 9, 9, StrongholdEnemy), 9, 9, Enemy, StepCostOwnZone},
		{"己方据点", withCell(NewGrid(), 0, 0, StrongholdHome), 0, 0, Home, StepCostOwnZone},
		{"全草地敌方角落", NewGrid(), 8, 8, Home, StepCostFoeZone},
		{"全草地己方角落", NewGrid(), 4, 4, Home, StepCostOwnZone},
		{"全草地电脑进人类角落", NewGrid(), 1, 3, Enemy, StepCostFoeZone},
		{"全草地中立", NewGrid(), 5, 4, Home, StepCostNeutral},
		{"越界", NewGrid(), -1, 0, Home, StepCostNeutral},
	}
	for _, c := range cases {
		if got := c.g.MovementStepCost(c.x, c.y, c.f); got != c.want {
			t.Fatalf("%s (%d,%d) 期望 %d got=%d", c.name, c.x, c.y, c.want, got)
		}
	}
	// 对角线道路穿过领地仍然免费
	if got := generated.MovementStepCost(9, 9-1, Home); got != StepCostFoeZone {
		t.Fatalf("(9,8) 期望 %d got=%d", StepCostFoeZone, got)
	}
	if got := generated.MovementStepCost(3, 3, Home); got != StepCostRoad {
		t.Fatalf("(3,3) 道路期望 0 got=%d", got)
	}
}

func withCell(g *Grid, x, y int, c CellType) *Grid {
	g.SetCell(x, y, c)
	return g
}

func TestGrid_TollCost_只在道路收费(t *testing.T) {
	g := NewGrid()
	g.SetCell(3, 3, Road)
	d := utils.NewSeqDice(15)
	if got := g.TollCost(3, 3, d); got != 15 {
		t.Fatalf("期望道路过路费=15 got=%d", got)
	}
	if got := g.TollCost(4, 4, d); got != 0 {
		t.Fatalf("期望草地过路费=0 got=%d", got)
	}
}

func TestGrid_AddUnit_越界失败(t *testing.T) {
	g := NewGrid()
	s := NewStronghold("p", Home, Point{0, 0})
	if g.AddUnit(NewUnit(Spearman, Point{X: 10, Y: 0}, s)) {
		t.Fatalf("期望越界 AddUnit 返回 false")
	}
	if len(g.Units()) != 0 {
		t.Fatalf("越界单位不应被登记")
	}
	u := NewUnit(Spearman, Point{X: 3, Y: 4}, s)
	if !g.AddUnit(u) || g.UnitAt(3, 4) != u {
		t.Fatalf("期望 UnitAt 找到新加单位")
	}
}

func TestParseCellType_兼容旧写法(t *testing.T) {
	for _, c := range AllCellTypes() {
		got, ok := ParseCellType(c.Token())
		if !ok || got != c {
			t.Fatalf("token %s 解析失败", c.Token())
		}
	}
	if c, ok := ParseCellType(" castle_player "); !ok || c != StrongholdHome {
		t.Fatalf("期望兼容 CASTLE_PLAYER got=%v ok=%v", c, ok)
	}
	if _, ok := ParseCellType("LAVA"); ok {
		t.Fatalf("未知 token 应失败")
	}
}

func TestGrid_Render_单位覆盖地形(t *testing.T) {
	g := NewGrid()
	g.SetCell(0, 0, StrongholdHome)
	home := NewStronghold("p", Home, Point{0, 0})
	enemy := NewStronghold("c", Enemy, Point{9, 9})
	g.AddUnit(NewUnit(Hero, Point{X: 1, Y: 0}, home))
	g.AddUnit(NewUnit(Hero, Point{X: 2, Y: 0}, enemy))
	rows := g.Render()
	if rows[0][:3] != "@Hh" {
		t.Fatalf("期望首行 @Hh got=%q", rows[0])
	}
}
