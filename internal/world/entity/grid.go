package entity

import (
	"Stronghold/internal/shared/utils"
)

const (
	Width         = 10
	Height        = 10
	ZoneSize      = 5
	ObstacleCount = 6
	TollMax       = 20
)

// 阵营进入各类地形的步数消耗
const (
	StepCostRoad    = 0
	StepCostNeutral = 1
	StepCostOwnZone = 5
	StepCostFoeZone = 10
)

type Point struct {
	X int
	Y int
}

// Distance 是曼哈顿距离。
func (p Point) Distance(q Point) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Grid 是 10x10 棋盘：地形格 + 当前存活单位。
type Grid struct {
	cells [Height][Width]CellType
	units []*Unit
}

// NewGrid 返回全草地的空地图。
func NewGrid() *Grid {
	return &Grid{}
}

// GenerateGrid 生成默认战场：主对角线为道路，左上/右下角为两方据点，
// 5x5 角落内的草地划为各自领地，最后在剩余草地上随机放置障碍。
func GenerateGrid(d utils.Dice) *Grid {
	g := NewGrid()
	for i := 0; i < Width && i < Height; i++ {
		g.cells[i][i] = Road
	}
	g.cells[0][0] = StrongholdHome
	g.cells[Height-1][Width-1] = StrongholdEnemy
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if g.cells[y][x] != Grass {
				continue
			}
			switch {
			case x < ZoneSize && y < ZoneSize:
				g.cells[y][x] = ZoneHome
			case x >= Width-ZoneSize && y >= Height-ZoneSize:
				g.cells[y][x] = ZoneEnemy
			}
		}
	}
	placed := 0
	for attempts := 0; placed < ObstacleCount && attempts < Width*Height*10; attempts++ {
		x, y := d.Intn(Width), d.Intn(Height)
		if g.cells[y][x] == Grass {
			g.cells[y][x] = Obstacle
			placed++
		}
	}
	return g
}

func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

func (g *Grid) Cell(x, y int) (CellType, bool) {
	if !g.InBounds(x, y) {
		return Grass, false
	}
	return g.cells[y][x], true
}

func (g *Grid) SetCell(x, y int, t CellType) bool {
	if !g.InBounds(x, y) || !t.Valid() {
		return false
	}
	g.cells[y][x] = t
	return true
}

// Rows 返回按行的地形拷贝。
func (g *Grid) Rows() [][]CellType {
	out := make([][]CellType, Height)
	for y := range out {
		out[y] = append([]CellType(nil), g.cells[y][:]...)
	}
	return out
}

func (g *Grid) IsWalkable(x, y int) bool {
	c, ok := g.Cell(x, y)
	return ok && c != Obstacle
}

func (g *Grid) IsRoad(x, y int) bool {
	c, ok := g.Cell(x, y)
	return ok && c == Road
}

func (g *Grid) IsHomeZone(x, y int) bool {
	c, ok := g.Cell(x, y)
	return ok && c == ZoneHome
}

func (g *Grid) IsEnemyZone(x, y int) bool {
	c, ok := g.Cell(x, y)
	return ok && c == ZoneEnemy
}

// MovementStepCost 返回 f 阵营进入 (x,y) 的步数：道路免费，己方领地 5，对方领地 10，其余 1。
// 领地按坐标划分（见 ZoneOwner），据点格与编辑器画出的草地同样计入。
func (g *Grid) MovementStepCost(x, y int, f Faction) int {
	if g.IsRoad(x, y) {
		return StepCostRoad
	}
	owner, ok := ZoneOwner(x, y)
	switch {
	case !ok:
		return StepCostNeutral
	case owner == f:
		return StepCostOwnZone
	default:
		return StepCostFoeZone
	}
}

// ZoneOwner 返回 (x,y) 所在角落领地的阵营：左上 5x5 为人类，右下 5x5 为电脑。
func ZoneOwner(x, y int) (Faction, bool) {
	switch {
	case x >= 0 && y >= 0 && x < ZoneSize && y < ZoneSize:
		return Home, true
	case x >= Width-ZoneSize && y >= Height-ZoneSize && x < Width && y < Height:
		return Enemy, true
	default:
		return Home, false
	}
}

// TollCost 每次调用都重新掷骰，道路上为 [0,20]，其余为 0。
func (g *Grid) TollCost(x, y int, d utils.Dice) int {
	if !g.IsRoad(x, y) {
		return 0
	}
	return utils.Between(d, 0, TollMax)
}

// StrongholdPosition 扫描地图找到阵营的据点格。
func (g *Grid) StrongholdPosition(f Faction) (Point, bool) {
	want := StrongholdCell(f)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if g.cells[y][x] == want {
				return Point{X: x, Y: y}, true
			}
		}
	}
	return Point{}, false
}

// AddUnit 越界时返回 false，单位不被登记。
func (g *Grid) AddUnit(u *Unit) bool {
	if u == nil || !g.InBounds(u.pos.X, u.pos.Y) {
		return false
	}
	g.units = append(g.units, u)
	return true
}

func (g *Grid) RemoveUnit(u *Unit) bool {
	for i, cur := range g.units {
		if cur == u {
			g.units = append(g.units[:i], g.units[i+1:]...)
			return true
		}
	}
	return false
}

// UnitAt 线性查找格子上的第一个存活单位。
func (g *Grid) UnitAt(x, y int) *Unit {
	return g.unitAtExcept(x, y, nil)
}

func (g *Grid) unitAtExcept(x, y int, skip *Unit) *Unit {
	for _, u := range g.units {
		if u != skip && u.IsAlive() && u.pos.X == x && u.pos.Y == y {
			return u
		}
	}
	return nil
}

func (g *Grid) Units() []*Unit {
	return append([]*Unit(nil), g.units...)
}

// ClearUnits 读档前清空单位表。
func (g *Grid) ClearUnits() {
	g.units = nil
}

// Render 逐行渲染，单位符号覆盖地形符号；人类阵营大写，电脑阵营小写。
func (g *Grid) Render() []string {
	var buf [Height][Width]rune
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			buf[y][x] = g.cells[y][x].Glyph()
		}
	}
	for _, u := range g.units {
		if u.IsAlive() && g.InBounds(u.pos.X, u.pos.Y) {
			buf[u.pos.Y][u.pos.X] = u.Glyph()
		}
	}
	out := make([]string, Height)
	for y := range buf {
		out[y] = string(buf[y][:])
	}
	return out
}
