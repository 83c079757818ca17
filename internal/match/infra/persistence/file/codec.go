package file

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"Stronghold/internal/match/entity"
	world "Stronghold/internal/world/entity"
)

const (
	sep           = ";"
	listSep       = ","
	sectionCastle = "[Castles]"
	sectionUnits  = "[Units]"
	sectionMap    = "[Map]"
)

// EncodeSave 写出三段式存档：[Castles] / [Units] / [Map]，段之间空一行。
//
//	owner;gold;points;x;y;structures;steps;isHuman
//	tier;x;y;hp;owner
//	CELL;CELL;...
func EncodeSave(w io.Writer, s entity.MatchState) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, sectionCastle)
	for _, st := range s.Strongholds {
		names := make([]string, 0, len(st.Structures))
		for _, b := range st.Structures {
			names = append(names, b.String())
		}
		human := 0
		if st.Faction == world.Home {
			human = 1
		}
		fmt.Fprintf(bw, "%s;%d;%d;%d;%d;%s;%d;%d\n",
			st.Owner, st.Gold, st.Score, st.Pos.X, st.Pos.Y, strings.Join(names, listSep), st.Steps, human)
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, sectionUnits)
	for _, u := range s.Units {
		fmt.Fprintf(bw, "%s;%d;%d;%d;%s\n", u.Tier, u.Pos.X, u.Pos.Y, u.HP, u.Owner)
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, sectionMap)
	writeCells(bw, s.Cells)
	return bw.Flush()
}

// DecodeSave 逐行解析存档，格式不对的行与未知的兵种/地形直接跳过。
// 只有两个阵营的据点与 [Map] 段都在时才算完整。
func DecodeSave(r io.Reader) (entity.MatchState, error) {
	var (
		s       entity.MatchState
		section string
		seen    [2]bool
		mapSeen bool
		y       int
	)
	cells := blankCells()

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch line {
		case sectionCastle, sectionUnits:
			section = line
			continue
		case sectionMap:
			section, mapSeen, y = line, true, 0
			continue
		case "":
			section = ""
			continue
		}
		parts := strings.Split(line, sep)
		switch section {
		case sectionCastle:
			st, ok := decodeStronghold(parts)
			if !ok {
				continue
			}
			s.Strongholds = append(s.Strongholds, st)
			seen[st.Faction] = true
			if st.Faction == world.Home {
				s.Player = st.Owner
			}
		case sectionUnits:
			if u, ok := decodeUnit(parts); ok {
				s.Units = append(s.Units, u)
			}
		case sectionMap:
			if y < world.Height {
				decodeRow(cells[y], parts)
				y++
			}
		}
	}
	if err := sc.Err(); err != nil {
		return entity.MatchState{}, err
	}
	if !seen[world.Home] || !seen[world.Enemy] || !mapSeen {
		return entity.MatchState{}, corrupt(OpLoadSave, map[string]any{
			"home": seen[world.Home], "enemy": seen[world.Enemy], "map": mapSeen,
		})
	}
	s.Cells = cells
	return s, nil
}

func decodeStronghold(parts []string) (world.StrongholdState, bool) {
	if len(parts) < 8 {
		return world.StrongholdState{}, false
	}
	nums, ok := atois(parts[1], parts[2], parts[3], parts[4], parts[6])
	if !ok {
		return world.StrongholdState{}, false
	}
	st := world.StrongholdState{
		Owner:   parts[0],
		Faction: world.Enemy,
		Gold:    nums[0],
		Score:   nums[1],
		Pos:     world.Point{X: nums[2], Y: nums[3]},
		Steps:   nums[4],
	}
	if strings.TrimSpace(parts[7]) == "1" {
		st.Faction = world.Home
	}
	for _, name := range strings.Split(parts[5], listSep) {
		if b, ok := world.ParseStructure(name); ok {
			st.Structures = append(st.Structures, b)
		}
	}
	return st, true
}

func decodeUnit(parts []string) (world.UnitState, bool) {
	if len(parts) < 5 {
		return world.UnitState{}, false
	}
	tier, ok := world.ParseTier(parts[0])
	if !ok {
		return world.UnitState{}, false
	}
	nums, ok := atois(parts[1], parts[2], parts[3])
	if !ok {
		return world.UnitState{}, false
	}
	return world.UnitState{
		Tier:  tier,
		Pos:   world.Point{X: nums[0], Y: nums[1]},
		HP:    nums[2],
		Owner: parts[4],
	}, true
}

func atois(fields ...string) ([]int, bool) {
	out := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}

func blankCells() [][]world.CellType {
	cells := make([][]world.CellType, world.Height)
	for y := range cells {
		cells[y] = make([]world.CellType, world.Width)
	}
	return cells
}

// decodeRow 未知地形保持草地。
func decodeRow(row []world.CellType, tokens []string) {
	for x := 0; x < len(tokens) && x < len(row); x++ {
		if c, ok := world.ParseCellType(tokens[x]); ok {
			row[x] = c
		}
	}
}

func writeCells(w io.Writer, cells [][]world.CellType) {
	for _, row := range cells {
		tokens := make([]string, len(row))
		for x, c := range row {
			tokens[x] = c.Token()
		}
		fmt.Fprintln(w, strings.Join(tokens, sep))
	}
}
