package entity

const (
	StartingGold        = 100
	StepsPerTurn        = 10
	CaptureTurns        = 2
	ReducedCaptureTurns = 1
	// 建造积分 = 造价 / BuildScoreDivisor
	BuildScoreDivisor = 5
)

// Stronghold 是一方的据点：经济、积分、每回合步数、已建建筑与兵员名册。
// 同一局只存在两个实例，由对局 actor 独占访问。
type Stronghold struct {
	owner              string
	faction            Faction
	pos                Point
	gold               int
	score              int
	steps              int
	built              [structureCount]bool
	roster             []*Unit
	captureTimeReduced bool
}

// NewStronghold 创建初始据点：100 金、10 步，自带岗哨。
func NewStronghold(owner string, f Faction, pos Point) *Stronghold {
	s := &Stronghold{
		owner:   owner,
		faction: f,
		pos:     pos,
		gold:    StartingGold,
		steps:   StepsPerTurn,
	}
	s.built[Garrison] = true
	return s
}

func (s *Stronghold) Owner() string    { return s.owner }
func (s *Stronghold) Faction() Faction { return s.faction }
func (s *Stronghold) Position() Point  { return s.pos }
func (s *Stronghold) Gold() int        { return s.gold }
func (s *Stronghold) Score() int       { return s.score }
func (s *Stronghold) Steps() int       { return s.steps }
func (s *Stronghold) IsHuman() bool    { return s.faction == Home }

func (s *Stronghold) HasStructure(st Structure) bool {
	return st.Valid() && s.built[st]
}

// Structures 按造价顺序返回已建建筑。
func (s *Stronghold) Structures() []Structure {
	out := make([]Structure, 0, structureCount)
	for st := Structure(0); st < structureCount; st++ {
		if s.built[st] {
			out = append(out, st)
		}
	}
	return out
}

// Roster 返回名册拷贝，遍历期间单位阵亡不影响迭代。
func (s *Stronghold) Roster() []*Unit {
	return append([]*Unit(nil), s.roster...)
}

func (s *Stronghold) LivingCount() int {
	n := 0
	for _, u := range s.roster {
		if u.IsAlive() {
			n++
		}
	}
	return n
}

func (s *Stronghold) SpendSteps(n int) error {
	if n < 0 {
		return nil
	}
	if s.steps < n {
		return ErrNotEnoughSteps.WithData("need", n).WithData("have", s.steps)
	}
	s.steps -= n
	return nil
}

func (s *Stronghold) ResetSteps() {
	s.steps = StepsPerTurn
}

func (s *Stronghold) AddGold(n int) {
	if n > 0 {
		s.gold += n
	}
}

// SpendGold 余额不足时不扣款。
func (s *Stronghold) SpendGold(n int) error {
	if n < 0 {
		return nil
	}
	if s.gold < n {
		return ErrNotEnoughGold.WithData("need", n).WithData("have", s.gold)
	}
	s.gold -= n
	return nil
}

// LoseGold 扣金币，最低扣到 0，小游戏输掉赌注时使用。
func (s *Stronghold) LoseGold(n int) {
	if n > 0 {
		s.gold = max(0, s.gold-n)
	}
}

func (s *Stronghold) AddScore(n int) {
	if n > 0 {
		s.score += n
	}
}

// Recruit 校验解锁建筑与金币后扣款并加入名册。
func (s *Stronghold) Recruit(u *Unit) error {
	if u == nil || !u.tier.Valid() {
		return ErrUnknownTier
	}
	need := RequiredStructure(u.tier)
	if !s.built[need] {
		return ErrStructureMissing.WithData("tier", u.tier.String()).WithData("structure", need.String())
	}
	if err := s.SpendGold(u.Profile().Cost); err != nil {
		return err
	}
	u.owner = s
	s.roster = append(s.roster, u)
	return nil
}

// Build 按名称建造，名称做大小写/空白归一化。
func (s *Stronghold) Build(name string) (Structure, error) {
	st, ok := ParseStructure(name)
	if !ok {
		return 0, ErrUnknownStructure.WithData("name", name)
	}
	return st, s.BuildStructure(st)
}

func (s *Stronghold) BuildStructure(st Structure) error {
	if !st.Valid() {
		return ErrUnknownStructure
	}
	if s.built[st] {
		return ErrAlreadyBuilt.WithData("structure", st.String())
	}
	cost := st.Profile().Cost
	if err := s.SpendGold(cost); err != nil {
		return err
	}
	s.built[st] = true
	s.score += cost / BuildScoreDivisor
	return nil
}

func (s *Stronghold) RemoveUnit(u *Unit) bool {
	for i, cur := range s.roster {
		if cur == u {
			s.roster = append(s.roster[:i], s.roster[i+1:]...)
			return true
		}
	}
	return false
}

// CaptureTurns 是攻下敌方据点所需的连续占领回合数。
func (s *Stronghold) CaptureTurns() int {
	if s.captureTimeReduced {
		return ReducedCaptureTurns
	}
	return CaptureTurns
}

func (s *Stronghold) CaptureTimeReduced() bool {
	return s.captureTimeReduced
}

func (s *Stronghold) SetCaptureTimeReduced(v bool) {
	s.captureTimeReduced = v
}

// StrongholdState 是据点的扁平快照，存档与读档共用。
type StrongholdState struct {
	Owner      string
	Faction    Faction
	Pos        Point
	Gold       int
	Score      int
	Steps      int
	Structures []Structure
}

func (s *Stronghold) State() StrongholdState {
	return StrongholdState{
		Owner:      s.owner,
		Faction:    s.faction,
		Pos:        s.pos,
		Gold:       s.gold,
		Score:      s.score,
		Steps:      s.steps,
		Structures: s.Structures(),
	}
}

// HydrateStronghold 从快照恢复据点，名册为空；岗哨始终存在。
func HydrateStronghold(st StrongholdState) *Stronghold {
	s := &Stronghold{
		owner:   st.Owner,
		faction: st.Faction,
		pos:     st.Pos,
		gold:    max(0, st.Gold),
		score:   max(0, st.Score),
		steps:   max(0, st.Steps),
	}
	s.built[Garrison] = true
	for _, b := range st.Structures {
		if b.Valid() {
			s.built[b] = true
		}
	}
	return s
}

// Enlist 把读档恢复的单位直接挂到名册，不收招募费。
func (s *Stronghold) Enlist(u *Unit) {
	u.owner = s
	s.roster = append(s.roster, u)
}
