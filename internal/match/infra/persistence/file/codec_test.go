package file

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"Stronghold/internal/match/entity"
	"Stronghold/internal/shared/utils"
	world "Stronghold/internal/world/entity"
	"Stronghold/modules/kit/errx"
)

func sampleState(t *testing.T) entity.MatchState {
	t.Helper()
	m := entity.NewMatch("m1", "alice", "", world.GenerateGrid(utils.NewDice(7)))
	if err := m.Home().BuildStructure(world.Tavern); err != nil {
		t.Fatalf("build: %v", err)
	}
	return m.State()
}

func TestSaveCodec_往返(t *testing.T) {
	in := sampleState(t)
	var buf bytes.Buffer
	if err := EncodeSave(&buf, in); err != nil {
		t.Fatalf("encode: %v", err)
	}
	text := buf.String()
	for _, want := range []string{"[Castles]", "[Units]", "[Map]", "Spearman;0;0;50;alice", "Computer;95;0;9;9;"} {
		if !strings.Contains(text, want) {
			t.Fatalf("存档缺少 %q:\n%s", want, text)
		}
	}

	out, err := DecodeSave(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Player != "alice" || len(out.Strongholds) != 2 || len(out.Units) != 2 {
		t.Fatalf("player=%s strongholds=%d units=%d", out.Player, len(out.Strongholds), len(out.Units))
	}
	var home world.StrongholdState
	for _, st := range out.Strongholds {
		if st.Faction == world.Home {
			home = st
		}
	}
	hasTavern := false
	for _, b := range home.Structures {
		if b == world.Tavern {
			hasTavern = true
		}
	}
	if !hasTavern || home.Gold != in.Strongholds[0].Gold || home.Score != in.Strongholds[0].Score {
		t.Fatalf("人类据点恢复不对 %+v", home)
	}
	for y := range in.Cells {
		for x := range in.Cells[y] {
			if in.Cells[y][x] != out.Cells[y][x] {
				t.Fatalf("地形 (%d,%d) want=%v got=%v", x, y, in.Cells[y][x], out.Cells[y][x])
			}
		}
	}
}

func TestDecodeSave_跳过坏行与未知地形(t *testing.T) {
	var b strings.Builder
	b.WriteString("[Castles]\n")
	b.WriteString("bob;10;3;0;0;Tavern;7;1\n")
	b.WriteString("short;row\n")
	b.WriteString("Computer;20;0;9;9;;5;0\n\n")
	b.WriteString("[Units]\n")
	b.WriteString("Dragon;1;1;10;bob\n")
	b.WriteString("Hero;1;1;x;bob\n")
	b.WriteString("Hero;2;2;50;bob\n\n")
	b.WriteString("[Map]\n")
	b.WriteString("LAVA;ROAD\n")

	s, err := DecodeSave(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(s.Strongholds) != 2 || len(s.Units) != 1 || s.Units[0].Tier != world.Hero {
		t.Fatalf("strongholds=%d units=%+v", len(s.Strongholds), s.Units)
	}
	if s.Cells[0][0] != world.Grass || s.Cells[0][1] != world.Road || s.Cells[5][5] != world.Grass {
		t.Fatalf("未知地形应保持草地 row0=%v", s.Cells[0])
	}
}

func TestDecodeSave_缺段报损坏(t *testing.T) {
	text := "[Castles]\nbob;10;3;0;0;;7;1\nComputer;20;0;9;9;;5;0\n"
	_, err := DecodeSave(strings.NewReader(text))
	if !errors.Is(err, errx.ErrCorrupt) {
		t.Fatalf("缺 [Map] 应报 ErrCorrupt got=%v", err)
	}
}
