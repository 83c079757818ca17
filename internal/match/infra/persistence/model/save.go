package model

import (
	"time"

	"Stronghold/internal/match/entity"
	world "Stronghold/internal/world/entity"
)

// SaveDoc 是 MongoDB 中一份存档；_id 为玩家名，地形按行存地形名。
type SaveDoc struct {
	Player      string          `bson:"_id"`
	Version     uint64          `bson:"version"`
	MapName     string          `bson:"map_name,omitempty"`
	Strongholds []StrongholdDoc `bson:"strongholds"`
	Units       []UnitDoc       `bson:"units"`
	Cells       [][]string      `bson:"cells"`
	SavedAt     time.Time       `bson:"saved_at"`
}

type StrongholdDoc struct {
	Owner      string   `bson:"owner"`
	Human      bool     `bson:"human"`
	X          int      `bson:"x"`
	Y          int      `bson:"y"`
	Gold       int      `bson:"gold"`
	Points     int      `bson:"points"`
	Steps      int      `bson:"steps"`
	Structures []string `bson:"structures"`
}

type UnitDoc struct {
	Tier  string `bson:"tier"`
	X     int    `bson:"x"`
	Y     int    `bson:"y"`
	HP    int    `bson:"hp"`
	Owner string `bson:"owner"`
}

func SnapshotToDoc(s *entity.MatchPersistSnapshot, now time.Time) SaveDoc {
	doc := SaveDoc{
		Player:  s.Player,
		Version: s.Version,
		MapName: s.State.MapName,
		SavedAt: now,
	}
	for _, st := range s.State.Strongholds {
		names := make([]string, 0, len(st.Structures))
		for _, b := range st.Structures {
			names = append(names, b.String())
		}
		doc.Strongholds = append(doc.Strongholds, StrongholdDoc{
			Owner: st.Owner, Human: st.Faction == world.Home,
			X: st.Pos.X, Y: st.Pos.Y,
			Gold: st.Gold, Points: st.Score, Steps: st.Steps,
			Structures: names,
		})
	}
	for _, u := range s.State.Units {
		doc.Units = append(doc.Units, UnitDoc{Tier: u.Tier.String(), X: u.Pos.X, Y: u.Pos.Y, HP: u.HP, Owner: u.Owner})
	}
	for _, row := range s.State.Cells {
		tokens := make([]string, len(row))
		for x, c := range row {
			tokens[x] = c.Token()
		}
		doc.Cells = append(doc.Cells, tokens)
	}
	return doc
}

// SaveDocToState 与文本存档同样宽松：未知兵种、建筑跳过，未知地形记为草地。
func SaveDocToState(doc SaveDoc) entity.MatchState {
	s := entity.MatchState{Player: doc.Player, MapName: doc.MapName}
	for _, d := range doc.Strongholds {
		st := world.StrongholdState{
			Owner: d.Owner, Faction: world.Enemy,
			Pos:  world.Point{X: d.X, Y: d.Y},
			Gold: d.Gold, Score: d.Points, Steps: d.Steps,
		}
		if d.Human {
			st.Faction = world.Home
		}
		for _, name := range d.Structures {
			if b, ok := world.ParseStructure(name); ok {
				st.Structures = append(st.Structures, b)
			}
		}
		s.Strongholds = append(s.Strongholds, st)
	}
	for _, d := range doc.Units {
		t, ok := world.ParseTier(d.Tier)
		if !ok {
			continue
		}
		s.Units = append(s.Units, world.UnitState{Tier: t, Pos: world.Point{X: d.X, Y: d.Y}, HP: d.HP, Owner: d.Owner})
	}
	for _, row := range doc.Cells {
		cells := make([]world.CellType, len(row))
		for x, tok := range row {
			if c, ok := world.ParseCellType(tok); ok {
				cells[x] = c
			}
		}
		s.Cells = append(s.Cells, cells)
	}
	return s
}
