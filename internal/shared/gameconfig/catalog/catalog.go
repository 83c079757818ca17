package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var raw []byte

type Tier struct {
	Name      string `yaml:"name"`
	Glyph     string `yaml:"glyph"`
	HP        int    `yaml:"hp"`
	Attack    int    `yaml:"attack"`
	Movement  int    `yaml:"movement"`
	Range     int    `yaml:"range"`
	Cost      int    `yaml:"cost"`
	KillBonus int    `yaml:"kill_bonus"`
	Ability   string `yaml:"ability"`
}

type Structure struct {
	Name    string `yaml:"name"`
	Cost    int    `yaml:"cost"`
	Unlocks string `yaml:"unlocks"`
}

type Catalog struct {
	Tiers      []Tier      `yaml:"tiers"`
	Structures []Structure `yaml:"structures"`
}

var (
	once   sync.Once
	loaded *Catalog
)

// Default 返回内嵌的兵种/建筑表，只解析一次；表损坏属于构建错误，直接 panic。
func Default() *Catalog {
	once.Do(func() {
		c, err := Parse(raw)
		if err != nil {
			panic(fmt.Sprintf("catalog.yaml invalid: %v", err))
		}
		loaded = c
	})
	return loaded
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) Tier(name string) (Tier, bool) {
	for _, t := range c.Tiers {
		if t.Name == name {
			return t, true
		}
	}
	return Tier{}, false
}

func (c *Catalog) Structure(name string) (Structure, bool) {
	for _, s := range c.Structures {
		if s.Name == name {
			return s, true
		}
	}
	return Structure{}, false
}

func (c *Catalog) validate() error {
	if len(c.Tiers) == 0 || len(c.Structures) == 0 {
		return fmt.Errorf("empty catalog")
	}
	prev := 0
	for _, t := range c.Tiers {
		if t.Name == "" || len(t.Glyph) != 1 {
			return fmt.Errorf("tier %q: name and single-char glyph required", t.Name)
		}
		if t.Cost <= prev {
			return fmt.Errorf("tier %q: cost %d not increasing", t.Name, t.Cost)
		}
		prev = t.Cost
	}
	for _, s := range c.Structures {
		if s.Unlocks == "" {
			continue
		}
		if _, ok := c.Tier(s.Unlocks); !ok {
			return fmt.Errorf("structure %q unlocks unknown tier %q", s.Name, s.Unlocks)
		}
	}
	return nil
}
