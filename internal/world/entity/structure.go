package entity

import (
	"fmt"
	"strings"
	"unicode"

	"Stronghold/internal/shared/gameconfig/catalog"
)

// Structure 是据点可建造的建筑，按造价从低到高排列。
type Structure int8

const (
	Tavern Structure = iota
	Stable
	Garrison
	CrossbowTower
	Armory
	Arena
	Cathedral
	structureCount
)

var structureNames = [structureCount]string{"Tavern", "Stable", "Garrison", "CrossbowTower", "Armory", "Arena", "Cathedral"}

type StructureProfile struct {
	Structure Structure
	Name      string
	Cost      int
	Unlocks   Tier
	HasUnlock bool
}

var (
	structureProfiles [structureCount]StructureProfile
	// 兵种 -> 解锁它的建筑
	requiredStructure [tierCount]Structure
)

func init() {
	c := catalog.Default()
	for s := Structure(0); s < structureCount; s++ {
		row, ok := c.Structure(structureNames[s])
		if !ok {
			panic(fmt.Sprintf("catalog missing structure %s", structureNames[s]))
		}
		p := StructureProfile{Structure: s, Name: row.Name, Cost: row.Cost}
		if row.Unlocks != "" {
			t, ok := ParseTier(row.Unlocks)
			if !ok {
				panic(fmt.Sprintf("structure %s unlocks unknown tier %s", row.Name, row.Unlocks))
			}
			p.Unlocks, p.HasUnlock = t, true
			requiredStructure[t] = s
		}
		structureProfiles[s] = p
	}
}

func AllStructures() []Structure {
	out := make([]Structure, 0, structureCount)
	for s := Structure(0); s < structureCount; s++ {
		out = append(out, s)
	}
	return out
}

func (s Structure) Valid() bool {
	return s >= 0 && s < structureCount
}

func (s Structure) Profile() *StructureProfile {
	if !s.Valid() {
		return nil
	}
	return &structureProfiles[s]
}

func (s Structure) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Structure(%d)", int(s))
	}
	return structureNames[s]
}

// RequiredStructure 返回解锁该兵种的建筑。
func RequiredStructure(t Tier) Structure {
	return requiredStructure[t]
}

// ParseStructure 做大小写与空白归一化后查找，"crossbow tower" 与 "CrossbowTower" 等价。
func ParseStructure(name string) (Structure, bool) {
	n := normalizeName(name)
	for s := Structure(0); s < structureCount; s++ {
		if normalizeName(structureNames[s]) == n {
			return s, true
		}
	}
	return 0, false
}

func normalizeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
