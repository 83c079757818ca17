package entity

type MatchPersistSnapshot struct {
	Version uint64
	Player  string
	State   MatchState
}
