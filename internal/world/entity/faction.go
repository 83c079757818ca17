package entity

// Faction 区分人类阵营与电脑阵营。
type Faction int8

const (
	Home Faction = iota
	Enemy
)

func (f Faction) Opponent() Faction {
	if f == Home {
		return Enemy
	}
	return Home
}

func (f Faction) String() string {
	if f == Home {
		return "home"
	}
	return "enemy"
}
