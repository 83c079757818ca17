package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"Stronghold/internal/amenity"
	"Stronghold/internal/match/entity"
	"Stronghold/internal/shared/utils"
	world "Stronghold/internal/world/entity"
	"Stronghold/modules/kit/logx"
	"Stronghold/modules/kit/tracex"
)

const (
	HeroVictoryBonus    = 20
	WipeoutVictoryBonus = 15
)

// TurnStart 是一次回合评估的结果。Bonus 非空表示攻下据点的一方打了一个额外回合。
type TurnStart struct {
	Faction world.Faction
	Over    bool
	Outcome entity.Outcome
	Reason  string
	Bonus   *Report
}

// Engine 是回合引擎：结束判定、回合动作、驿站效果与酒馆牌局都在这里修改对局状态。
// 不是并发安全的，只能由对局 actor 调用。
type Engine struct {
	m        *entity.Match
	dice     utils.Dice
	log      logx.Logger
	narrator amenity.Narrator

	begun    bool
	start    TurnStart
	offered  bool
	drunkard *Drunkard
}

func NewEngine(m *entity.Match, dice utils.Dice, log logx.Logger, narrator amenity.Narrator) *Engine {
	if log == nil {
		log = logx.Nop()
	}
	if dice == nil {
		dice = utils.NewDice(0)
	}
	return &Engine{m: m, dice: dice, log: log, narrator: narrator}
}

func (e *Engine) Match() *entity.Match { return e.m }

// Reset 读档后换上新对局，未完成的回合评估与牌局一并作废。
func (e *Engine) Reset(m *entity.Match) {
	e.m = m
	e.begun = false
	e.start = TurnStart{}
	e.offered = false
	e.drunkard = nil
}

func (e *Engine) ctx(ctx context.Context) context.Context {
	ctx = tracex.WithMatchID(ctx, string(e.m.ID()))
	return tracex.WithTurn(ctx, e.m.Turn())
}

// BeginTurn 在当前阵营行动前评估结束条件，同一回合内重复调用返回同一结果。
//
// 判定顺序：人类英雄到达敌方据点（胜，+20）> 敌方全灭（胜，+15）> 人类全灭（负）
// > 敌方英雄到达人类据点（负）> 占领标记（占领方打一个额外回合后获胜）。
// 未结束时重置当前阵营的步数。
func (e *Engine) BeginTurn(ctx context.Context) TurnStart {
	if e.begun {
		return e.start
	}
	ctx = e.ctx(ctx)
	e.begun = true
	e.start = e.evaluate(ctx)
	return e.start
}

func (e *Engine) evaluate(ctx context.Context) TurnStart {
	m := e.m
	ts := TurnStart{Faction: m.Active()}
	if m.Over() {
		ts.Over, ts.Outcome = true, m.Outcome()
		return ts
	}
	home, enemy := m.Home(), m.Enemy()

	switch {
	case heroAt(home, enemy.Position()):
		home.AddScore(HeroVictoryBonus)
		return e.finish(ctx, ts, entity.OutcomeVictory, "your hero reached the enemy stronghold")
	case enemy.LivingCount() == 0:
		home.AddScore(WipeoutVictoryBonus)
		return e.finish(ctx, ts, entity.OutcomeVictory, "all enemy units destroyed")
	case home.LivingCount() == 0:
		return e.finish(ctx, ts, entity.OutcomeDefeat, "all your units destroyed")
	case heroAt(enemy, home.Position()):
		return e.finish(ctx, ts, entity.OutcomeDefeat, "the enemy hero reached your stronghold")
	}

	m.TrackOccupation(world.Home)
	m.TrackOccupation(world.Enemy)
	if f, ok := m.Captured(); ok {
		capturer := m.Stronghold(f)
		capturer.ResetSteps()
		bonus := e.randomTurn(ctx, f)
		ts.Bonus = &bonus
		outcome := entity.OutcomeVictory
		if f == world.Enemy {
			outcome = entity.OutcomeDefeat
		}
		return e.finish(ctx, ts, outcome, fmt.Sprintf("%s captured the opposing stronghold", capturer.Owner()))
	}

	m.Stronghold(ts.Faction).ResetSteps()
	return ts
}

func heroAt(s *world.Stronghold, p world.Point) bool {
	for _, u := range s.Roster() {
		if u.IsAlive() && u.Tier() == world.Hero && u.Position() == p {
			return true
		}
	}
	return false
}

func (e *Engine) finish(ctx context.Context, ts TurnStart, o entity.Outcome, reason string) TurnStart {
	e.m.Finish(o)
	ts.Over, ts.Outcome, ts.Reason = true, o, reason
	e.narrate(ctx, fmt.Sprintf("game over (%s): %s, score %d", o, reason, e.m.Home().Score()))
	e.log.WithContext(ctx).Info("match finished",
		zap.String("outcome", o.String()),
		zap.String("reason", reason),
		zap.Int("score", e.m.Home().Score()),
	)
	return ts
}

// Act 执行人类玩家的回合动作并把回合交给电脑。
func (e *Engine) Act(ctx context.Context, cmd Command) (Report, error) {
	if e.m.Phase() == entity.PhaseComputerTurn {
		return Report{}, ErrNotYourTurn.WithData("phase", e.m.Phase().String())
	}
	if !cmd.Action.Valid() {
		return Report{}, ErrUnknownAction.WithData("action", int(cmd.Action))
	}
	if ts := e.BeginTurn(ctx); ts.Over {
		return Report{}, ErrGameOver.WithData("outcome", ts.Outcome.String())
	}
	ctx = e.ctx(ctx)
	e.offered = false

	rep := Report{Faction: world.Home, Action: cmd.Action}
	home := e.m.Home()
	roster := home.Roster()
	orderOf := func(i int) (Order, bool) {
		if i < len(cmd.Orders) {
			return cmd.Orders[i], true
		}
		return Order{}, false
	}

	switch cmd.Action {
	case ActionMove:
		e.forEachUnit(ctx, &rep, roster, orderOf, true, false)
	case ActionAttack:
		e.forEachUnit(ctx, &rep, roster, orderOf, false, true)
	case ActionMoveAttack:
		e.forEachUnit(ctx, &rep, roster, orderOf, true, true)
	case ActionRecruit:
		e.recruit(ctx, &rep, home, cmd.Tier)
	case ActionBuild:
		if st, ok := e.build(ctx, &rep, home, cmd.Structure); ok && st == world.Tavern {
			e.offered = true
			rep.DrunkardOffered = true
		}
	case ActionSkip:
		e.say(ctx, &rep, fmt.Sprintf("%s skips the turn", home.Owner()))
	}
	e.endTurn()
	return rep, nil
}

// ComputerTurn 让电脑阵营在前五个动作里均匀随机选一个执行，坐标同样均匀随机。
func (e *Engine) ComputerTurn(ctx context.Context) (Report, error) {
	if e.m.Phase() == entity.PhasePlayerTurn {
		return Report{}, ErrNotYourTurn.WithData("phase", e.m.Phase().String())
	}
	if ts := e.BeginTurn(ctx); ts.Over {
		return Report{}, ErrGameOver.WithData("outcome", ts.Outcome.String())
	}
	rep := e.randomTurn(e.ctx(ctx), world.Enemy)
	e.endTurn()
	return rep, nil
}

func (e *Engine) endTurn() {
	e.m.Advance()
	e.begun = false
}

func (e *Engine) randomTurn(ctx context.Context, f world.Faction) Report {
	s := e.m.Stronghold(f)
	action := Action(e.dice.Intn(computerActions) + 1)
	rep := Report{Faction: f, Action: action}
	e.say(ctx, &rep, fmt.Sprintf("%s chooses %s", s.Owner(), action))

	randomOrder := func(int) (Order, bool) {
		p := world.Point{X: e.dice.Intn(world.Width), Y: e.dice.Intn(world.Height)}
		return Order{To: p, Target: p}, true
	}
	switch action {
	case ActionMove:
		e.forEachUnit(ctx, &rep, s.Roster(), randomOrder, true, false)
	case ActionAttack:
		e.forEachUnit(ctx, &rep, s.Roster(), randomOrder, false, true)
	case ActionRecruit:
		tiers := world.AllTiers()
		e.recruit(ctx, &rep, s, tiers[e.dice.Intn(len(tiers))])
	case ActionBuild:
		structures := world.AllStructures()
		e.build(ctx, &rep, s, structures[e.dice.Intn(len(structures))].String())
	case ActionSkip:
		e.say(ctx, &rep, fmt.Sprintf("%s skips the turn", s.Owner()))
	}
	return rep
}

func (e *Engine) forEachUnit(ctx context.Context, rep *Report, roster []*world.Unit, orderOf func(int) (Order, bool), move, attack bool) {
	if len(roster) == 0 {
		e.say(ctx, rep, "no units to command")
		return
	}
	for i, u := range roster {
		o, ok := orderOf(i)
		if !ok {
			continue
		}
		if !u.IsAlive() {
			continue
		}
		if move && !o.Stay {
			e.move(ctx, rep, u, o.To)
			if !u.IsAlive() {
				continue
			}
		}
		if attack && !o.HoldFire {
			e.attack(ctx, rep, u, o.Target)
		}
	}
}

func (e *Engine) move(ctx context.Context, rep *Report, u *world.Unit, to world.Point) {
	res, err := u.Move(to, e.m.Grid(), e.dice)
	if err != nil {
		e.rejected(ctx, rep, "move", err, fmt.Sprintf("%s cannot move to (%d,%d)", u.Name(), to.X, to.Y))
		return
	}
	e.m.MarkDirty()
	line := fmt.Sprintf("%s moves (%d,%d) -> (%d,%d), %d steps", u.Name(), res.From.X, res.From.Y, to.X, to.Y, res.StepCost)
	if res.Toll > 0 {
		line += fmt.Sprintf(", toll %d", res.Toll)
	}
	e.say(ctx, rep, line)
	if res.Died {
		e.say(ctx, rep, fmt.Sprintf("%s could not pay the toll and died", u.Name()))
		if res.RosterWiped {
			e.say(ctx, rep, fmt.Sprintf("%s has no units left", u.Owner().Owner()))
		}
		return
	}
	if u.Profile().Ability == world.AbilityGoldFind {
		e.say(ctx, rep, fmt.Sprintf("%s found %d gold (+%d score)", u.Name(), res.GoldFound, res.ScoreGained))
	}
}

func (e *Engine) attack(ctx context.Context, rep *Report, u *world.Unit, target world.Point) {
	res, err := u.Attack(target, e.m.Grid())
	if err != nil {
		e.rejected(ctx, rep, "attack", err, fmt.Sprintf("%s cannot attack (%d,%d)", u.Name(), target.X, target.Y))
		return
	}
	e.m.MarkDirty()
	e.say(ctx, rep, fmt.Sprintf("%s hits %s for %d (hp %d)", u.Name(), res.Target.Name(), res.Damage, res.Target.HP()))
	if res.Killed {
		line := fmt.Sprintf("%s is destroyed", res.Target.Name())
		if res.Bonus > 0 {
			line += fmt.Sprintf(", +%d score", res.Bonus)
		}
		e.say(ctx, rep, line)
	}
}

func (e *Engine) recruit(ctx context.Context, rep *Report, s *world.Stronghold, t world.Tier) {
	u := world.NewUnit(t, s.Position(), s)
	if err := s.Recruit(u); err != nil {
		e.rejected(ctx, rep, "recruit", err, fmt.Sprintf("%s cannot recruit %s", s.Owner(), t))
		return
	}
	e.m.Grid().AddUnit(u)
	e.m.MarkDirty()
	e.say(ctx, rep, fmt.Sprintf("%s recruits %s, gold %d", s.Owner(), t, s.Gold()))
}

func (e *Engine) build(ctx context.Context, rep *Report, s *world.Stronghold, name string) (world.Structure, bool) {
	st, err := s.Build(name)
	if err != nil {
		e.rejected(ctx, rep, "build", err, fmt.Sprintf("%s cannot build %s", s.Owner(), name))
		return st, false
	}
	e.m.MarkDirty()
	e.say(ctx, rep, fmt.Sprintf("%s builds %s, gold %d", s.Owner(), st, s.Gold()))
	return st, true
}

func (e *Engine) rejected(ctx context.Context, rep *Report, action string, err error, line string) {
	rep.reject(err)
	e.say(ctx, rep, line+": "+err.Error())
	logx.Rejected(ctx, e.log, "match_"+action, err,
		zap.String("faction", rep.Faction.String()),
	)
}

func (e *Engine) say(ctx context.Context, rep *Report, line string) {
	rep.add(line)
	e.narrate(ctx, line)
}

func (e *Engine) narrate(ctx context.Context, line string) {
	e.log.WithContext(ctx).Debug(line)
	if e.narrator != nil {
		e.narrator.Narrate(ctx, line)
	}
}

// ApplyEffect 把驿站到访的效果作用到人类据点。对局结束后的效果被丢弃。
func (e *Engine) ApplyEffect(ctx context.Context, eff amenity.Effect) error {
	if e.m.Over() {
		return nil
	}
	ctx = e.ctx(ctx)
	home := e.m.Home()
	switch eff.Kind {
	case amenity.EffectHealth:
		for _, u := range home.Roster() {
			u.AddHealth(eff.Amount)
		}
		e.narrate(ctx, fmt.Sprintf("your units rested: +%d hp", eff.Amount))
	case amenity.EffectMovement:
		for _, u := range home.Roster() {
			u.AddMovement(eff.Amount)
		}
		e.narrate(ctx, fmt.Sprintf("your units ate: +%d movement", eff.Amount))
	case amenity.EffectCaptureReduced:
		home.SetCaptureTimeReduced(true)
		e.narrate(ctx, "fashion cut: capture time reduced")
	case amenity.EffectCaptureRestored:
		home.SetCaptureTimeReduced(false)
		e.narrate(ctx, "fashion cut wore off: capture time restored")
	default:
		return amenity.ErrUnknownKind.WithData("effect", int(eff.Kind))
	}
	e.m.MarkDirty()
	return nil
}
