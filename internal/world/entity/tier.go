package entity

import (
	"fmt"
	"strings"

	"Stronghold/internal/shared/gameconfig/catalog"
)

// Tier 是兵种标签，按招募价格从低到高排列。
type Tier int8

const (
	Spearman Tier = iota
	Crossbowman
	Swordsman
	Cavalryman
	Paladin
	Hero
	tierCount
)

var tierNames = [tierCount]string{"Spearman", "Crossbowman", "Swordsman", "Cavalryman", "Paladin", "Hero"}

// Ability 是兵种特技，目前只有英雄的拾金。
type Ability int8

const (
	AbilityNone Ability = iota
	AbilityGoldFind
)

const GoldFindMax = 20

type TierProfile struct {
	Tier        Tier
	Name        string
	Glyph       rune
	HP          int
	Attack      int
	Movement    int
	AttackRange int
	Cost        int
	KillBonus   int
	Ability     Ability
}

var tierProfiles [tierCount]TierProfile

func init() {
	c := catalog.Default()
	for t := Tier(0); t < tierCount; t++ {
		row, ok := c.Tier(tierNames[t])
		if !ok {
			panic(fmt.Sprintf("catalog missing tier %s", tierNames[t]))
		}
		ability := AbilityNone
		if row.Ability == "gold_find" {
			ability = AbilityGoldFind
		}
		tierProfiles[t] = TierProfile{
			Tier:        t,
			Name:        row.Name,
			Glyph:       rune(row.Glyph[0]),
			HP:          row.HP,
			Attack:      row.Attack,
			Movement:    row.Movement,
			AttackRange: row.Range,
			Cost:        row.Cost,
			KillBonus:   row.KillBonus,
			Ability:     ability,
		}
	}
}

func AllTiers() []Tier {
	out := make([]Tier, 0, tierCount)
	for t := Tier(0); t < tierCount; t++ {
		out = append(out, t)
	}
	return out
}

func (t Tier) Valid() bool {
	return t >= 0 && t < tierCount
}

// Profile 返回只读的数值表项；非法 tier 返回 nil。
func (t Tier) Profile() *TierProfile {
	if !t.Valid() {
		return nil
	}
	return &tierProfiles[t]
}

func (t Tier) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Tier(%d)", int(t))
	}
	return tierNames[t]
}

// ParseTier 按名称查找兵种，忽略大小写与首尾空白。
func ParseTier(name string) (Tier, bool) {
	n := strings.TrimSpace(name)
	for t := Tier(0); t < tierCount; t++ {
		if strings.EqualFold(tierNames[t], n) {
			return t, true
		}
	}
	return 0, false
}
