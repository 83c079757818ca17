package entity

import "strings"

type CellType int8

const (
	Grass CellType = iota
	Road
	Obstacle
	StrongholdHome
	StrongholdEnemy
	ZoneHome
	ZoneEnemy
	cellTypeCount
)

var cellTokens = [cellTypeCount]string{
	"GRASS", "ROAD", "OBSTACLE", "STRONGHOLD_HOME", "STRONGHOLD_ENEMY", "ZONE_HOME", "ZONE_ENEMY",
}

var cellGlyphs = [cellTypeCount]rune{'.', '=', '#', '@', '&', '+', '-'}

// 旧存档里的写法，读入时同样接受
var legacyCellTokens = map[string]CellType{
	"CASTLE_PLAYER": StrongholdHome,
	"CASTLE_COMP":   StrongholdEnemy,
	"PLAYER_ZONE":   ZoneHome,
	"COMP_ZONE":     ZoneEnemy,
}

func AllCellTypes() []CellType {
	out := make([]CellType, 0, cellTypeCount)
	for c := CellType(0); c < cellTypeCount; c++ {
		out = append(out, c)
	}
	return out
}

func (c CellType) Valid() bool {
	return c >= 0 && c < cellTypeCount
}

// Token 是存档与地图文件里的写法。
func (c CellType) Token() string {
	if !c.Valid() {
		return ""
	}
	return cellTokens[c]
}

func (c CellType) String() string {
	return c.Token()
}

func (c CellType) Glyph() rune {
	if !c.Valid() {
		return '?'
	}
	return cellGlyphs[c]
}

func ParseCellType(token string) (CellType, bool) {
	t := strings.ToUpper(strings.TrimSpace(token))
	for i, s := range cellTokens {
		if s == t {
			return CellType(i), true
		}
	}
	c, ok := legacyCellTokens[t]
	return c, ok
}

func StrongholdCell(f Faction) CellType {
	if f == Home {
		return StrongholdHome
	}
	return StrongholdEnemy
}
