package amenity

import (
	"strings"
	"time"
)

// Kind 是驿站种类。
type Kind int8

const (
	Lodging Kind = iota
	Dining
	Grooming
	kindCount
)

var kindNames = [kindCount]string{"lodging", "dining", "grooming"}

// DefaultCapacity 是各驿站的固定容量。
var DefaultCapacity = [kindCount]int{5, 12, 2}

func AllKinds() []Kind {
	return []Kind{Lodging, Dining, Grooming}
}

func (k Kind) Valid() bool {
	return k >= 0 && k < kindCount
}

func (k Kind) String() string {
	if !k.Valid() {
		return "unknown"
	}
	return kindNames[k]
}

func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range kindNames {
		if n == s {
			return Kind(i), true
		}
	}
	return 0, false
}

// Offer 是人类玩家可选的服务档位。
type Offer struct {
	Kind          Kind
	Choice        int
	Label         string
	Duration      time.Duration
	HealthBonus   int
	MovementBonus int
	Fashion       bool
}

var offers = [kindCount][]Offer{
	Lodging: {
		{Kind: Lodging, Choice: 1, Label: "short rest", Duration: 100 * time.Millisecond, HealthBonus: 2},
		{Kind: Lodging, Choice: 2, Label: "long rest", Duration: 300 * time.Millisecond, HealthBonus: 3},
	},
	Dining: {
		{Kind: Dining, Choice: 1, Label: "snack", Duration: 1500 * time.Millisecond, MovementBonus: 2},
		{Kind: Dining, Choice: 2, Label: "full meal", Duration: 3000 * time.Millisecond, MovementBonus: 3},
	},
	Grooming: {
		{Kind: Grooming, Choice: 1, Label: "simple cut", Duration: 1000 * time.Millisecond},
		{Kind: Grooming, Choice: 2, Label: "fashion cut", Duration: 3000 * time.Millisecond, Fashion: true},
	},
}

func Offers(k Kind) []Offer {
	if !k.Valid() {
		return nil
	}
	return append([]Offer(nil), offers[k]...)
}

func FindOffer(k Kind, choice int) (Offer, bool) {
	for _, o := range Offers(k) {
		if o.Choice == choice {
			return o, true
		}
	}
	return Offer{}, false
}

const (
	labelFashion = "fashion cut"
	labelSimple  = "simple cut"
)
