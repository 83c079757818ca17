package entity

// ScoreEntry 是排行榜的一行：玩家、积分、地图。
type ScoreEntry struct {
	Username string `json:"username"`
	Points   int    `json:"points"`
	Map      string `json:"map"`
}

// ScoreEntry 取对局结束时的人类据点取分。
func (m *Match) ScoreEntry() ScoreEntry {
	return ScoreEntry{Username: m.player, Points: m.Home().Score(), Map: m.mapName}
}
