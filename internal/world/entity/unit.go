package entity

import (
	"unicode"

	"Stronghold/internal/shared/utils"
)

// Unit 是一名士兵：不可变的兵种数值 + 可变的血量、位置、移动加成。
// 单位从招募到阵亡只属于一个据点。
type Unit struct {
	tier          Tier
	hp            int
	pos           Point
	movementBonus int
	owner         *Stronghold
}

func NewUnit(t Tier, pos Point, owner *Stronghold) *Unit {
	return &Unit{
		tier:  t,
		hp:    t.Profile().HP,
		pos:   pos,
		owner: owner,
	}
}

func (u *Unit) Tier() Tier            { return u.tier }
func (u *Unit) Profile() *TierProfile { return u.tier.Profile() }
func (u *Unit) Name() string          { return u.tier.String() }
func (u *Unit) HP() int               { return u.hp }
func (u *Unit) AttackPower() int      { return u.tier.Profile().Attack }
func (u *Unit) AttackRange() int      { return u.tier.Profile().AttackRange }
func (u *Unit) Position() Point       { return u.pos }
func (u *Unit) Owner() *Stronghold    { return u.owner }
func (u *Unit) IsAlive() bool         { return u.hp > 0 }
func (u *Unit) MovementBonus() int    { return u.movementBonus }

// Movement 是兵种移动力加上驿站带来的加成。
func (u *Unit) Movement() int {
	return u.tier.Profile().Movement + u.movementBonus
}

func (u *Unit) Faction() Faction {
	if u.owner == nil {
		return Home
	}
	return u.owner.Faction()
}

func (u *Unit) Glyph() rune {
	g := u.tier.Profile().Glyph
	if u.Faction() == Enemy {
		return unicode.ToLower(g)
	}
	return unicode.ToUpper(g)
}

// TakeDamage 扣血，最低到 0。
func (u *Unit) TakeDamage(d int) {
	if d < 0 {
		return
	}
	u.hp = max(0, u.hp-d)
}

// AddHealth 不设上限。
func (u *Unit) AddHealth(bonus int) {
	if !u.IsAlive() {
		return
	}
	u.hp += bonus
}

func (u *Unit) AddMovement(bonus int) {
	u.movementBonus += bonus
}

// SetHP 仅用于读档恢复。
func (u *Unit) SetHP(hp int) {
	u.hp = max(0, hp)
}

type MoveResult struct {
	From        Point
	To          Point
	StepCost    int
	Toll        int
	GoldFound   int
	ScoreGained int
	// Died 表示付不起过路费，单位原地阵亡
	Died bool
	// RosterWiped 表示阵亡的是据点最后一个存活单位
	RosterWiped bool
}

// Move 把单位移动到 to。
//
// 规则拒绝（不可通行、超出移动力、步数不足）时不改动任何状态。
// 移动成功后在道路上收过路费，金币不足则单位原地阵亡并立即从据点与棋盘移除。
// 英雄每次存活的移动都会拾取 [0,20] 金币并获得一半的积分。
func (u *Unit) Move(to Point, g *Grid, d utils.Dice) (MoveResult, error) {
	res := MoveResult{From: u.pos, To: to}
	if !u.IsAlive() {
		return res, ErrUnitDead
	}
	if !g.IsWalkable(to.X, to.Y) {
		return res, ErrNotWalkable.WithData("x", to.X).WithData("y", to.Y)
	}
	if u.pos.Distance(to) > u.Movement() {
		return res, ErrTooFar.WithData("distance", u.pos.Distance(to)).WithData("movement", u.Movement())
	}

	s := u.owner
	res.StepCost = g.MovementStepCost(to.X, to.Y, u.Faction())
	if err := s.SpendSteps(res.StepCost); err != nil {
		return res, err
	}
	u.pos = to

	res.Toll = g.TollCost(to.X, to.Y, d)
	if res.Toll > 0 {
		if err := s.SpendGold(res.Toll); err != nil {
			u.hp = 0
			s.RemoveUnit(u)
			g.RemoveUnit(u)
			res.Died = true
			res.RosterWiped = s.LivingCount() == 0
			return res, nil
		}
	}

	if u.Profile().Ability == AbilityGoldFind {
		res.GoldFound = utils.Between(d, 0, GoldFindMax)
		res.ScoreGained = res.GoldFound / 2
		s.AddGold(res.GoldFound)
		s.AddScore(res.ScoreGained)
	}
	return res, nil
}

type AttackResult struct {
	Target *Unit
	Damage int
	Killed bool
	Bonus  int
}

// Attack 攻击目标格上的单位，不会触发反击。
// 目标阵亡时从其据点与棋盘移除；人类单位击杀电脑单位按目标兵种加分。
func (u *Unit) Attack(target Point, g *Grid) (AttackResult, error) {
	var res AttackResult
	if !u.IsAlive() {
		return res, ErrUnitDead
	}
	victim := g.unitAtExcept(target.X, target.Y, u)
	if victim == nil {
		return res, ErrNoTarget.WithData("x", target.X).WithData("y", target.Y)
	}
	if u.pos.Distance(target) > u.AttackRange() {
		return res, ErrOutOfRange.WithData("distance", u.pos.Distance(target)).WithData("range", u.AttackRange())
	}

	res.Target = victim
	res.Damage = u.AttackPower()
	victim.TakeDamage(res.Damage)
	if victim.IsAlive() {
		return res, nil
	}

	res.Killed = true
	if victim.owner != nil {
		victim.owner.RemoveUnit(victim)
	}
	g.RemoveUnit(victim)
	if u.Faction() == Home && victim.Faction() == Enemy {
		res.Bonus = victim.Profile().KillBonus
		u.owner.AddScore(res.Bonus)
	}
	return res, nil
}

// UnitState 是单位的扁平快照。
type UnitState struct {
	Tier  Tier
	Pos   Point
	HP    int
	Owner string
}

func (u *Unit) State() UnitState {
	owner := ""
	if u.owner != nil {
		owner = u.owner.owner
	}
	return UnitState{Tier: u.tier, Pos: u.pos, HP: u.hp, Owner: owner}
}
