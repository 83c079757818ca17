package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"Stronghold/internal/shared/utils"
)

// DeckSize 同时也是最多的回合数。
const DeckSize = 10

// Drunkard 是酒馆里的比大小牌局：双方各持一副洗好的 1..10，
// 每回合各翻一张，大者得一分；玩家可以在任意回合前认输，按已翻的回合结算。
type Drunkard struct {
	bet          int
	player       []int
	computer     []int
	round        int
	playerWins   int
	computerWins int
	done         bool
}

type DrunkardRound struct {
	Round        int
	PlayerCard   int
	ComputerCard int
	// Winner: 1 玩家，-1 电脑，0 平
	Winner int
}

type DrunkardResult struct {
	Bet          int
	Rounds       int
	PlayerWins   int
	ComputerWins int
	// Payout 是玩家金币变化：赢 +2×赌注，输 -赌注，平 0
	Payout int
}

func NewDrunkard(bet int, d utils.Dice) *Drunkard {
	g := &Drunkard{bet: bet, player: deck(), computer: deck()}
	utils.Shuffle(d, g.player)
	utils.Shuffle(d, g.computer)
	return g
}

func deck() []int {
	out := make([]int, DeckSize)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func (g *Drunkard) Done() bool { return g.done }

// Reveal 翻开下一张牌；牌翻完或已结束时返回 false。
func (g *Drunkard) Reveal() (DrunkardRound, bool) {
	if g.done || g.round >= DeckSize {
		g.done = true
		return DrunkardRound{}, false
	}
	r := DrunkardRound{Round: g.round + 1, PlayerCard: g.player[g.round], ComputerCard: g.computer[g.round]}
	switch {
	case r.PlayerCard > r.ComputerCard:
		r.Winner = 1
		g.playerWins++
	case r.ComputerCard > r.PlayerCard:
		r.Winner = -1
		g.computerWins++
	}
	g.round++
	if g.round >= DeckSize {
		g.done = true
	}
	return r, true
}

func (g *Drunkard) Surrender() {
	g.done = true
}

func (g *Drunkard) Result() DrunkardResult {
	res := DrunkardResult{Bet: g.bet, Rounds: g.round, PlayerWins: g.playerWins, ComputerWins: g.computerWins}
	switch {
	case g.playerWins > g.computerWins:
		res.Payout = 2 * g.bet
	case g.computerWins > g.playerWins:
		res.Payout = -g.bet
	}
	return res
}

// DrunkardOffered 表示人类刚建好酒馆，可以开一局牌。
func (e *Engine) DrunkardOffered() bool {
	return e.offered && e.drunkard == nil && !e.m.Over()
}

// StartDrunkard 下注开局；赌注为 0 视为放弃本次邀请。
func (e *Engine) StartDrunkard(ctx context.Context, bet int) error {
	if e.drunkard != nil {
		return ErrDrunkardActive
	}
	if !e.DrunkardOffered() {
		return ErrNoDrunkardOffer
	}
	ctx = e.ctx(ctx)
	if bet == 0 {
		e.offered = false
		e.narrate(ctx, "drunkard: declined")
		return nil
	}
	gold := e.m.Home().Gold()
	if bet < 0 || bet > gold {
		return ErrInvalidBet.WithData("bet", bet).WithData("gold", gold)
	}
	e.offered = false
	e.drunkard = NewDrunkard(bet, e.dice)
	e.narrate(ctx, fmt.Sprintf("drunkard: bet %d", bet))
	return nil
}

// DrunkardReveal 打一回合；最后一回合之后自动结算，settled 非空。
func (e *Engine) DrunkardReveal(ctx context.Context) (DrunkardRound, *DrunkardResult, error) {
	if e.drunkard == nil {
		return DrunkardRound{}, nil, ErrNoDrunkard
	}
	ctx = e.ctx(ctx)
	r, ok := e.drunkard.Reveal()
	if ok {
		e.narrate(ctx, fmt.Sprintf("drunkard round %d: you %d, computer %d", r.Round, r.PlayerCard, r.ComputerCard))
	}
	if !e.drunkard.Done() {
		return r, nil, nil
	}
	res := e.settle(ctx)
	return r, &res, nil
}

// DrunkardSurrender 认输并按已翻开的回合结算。
func (e *Engine) DrunkardSurrender(ctx context.Context) (DrunkardResult, error) {
	if e.drunkard == nil {
		return DrunkardResult{}, ErrNoDrunkard
	}
	e.drunkard.Surrender()
	return e.settle(e.ctx(ctx)), nil
}

func (e *Engine) settle(ctx context.Context) DrunkardResult {
	res := e.drunkard.Result()
	e.drunkard = nil
	home := e.m.Home()
	switch {
	case res.Payout > 0:
		home.AddGold(res.Payout)
	case res.Payout < 0:
		home.LoseGold(-res.Payout)
	}
	e.m.MarkDirty()
	e.narrate(ctx, fmt.Sprintf("drunkard: %d:%d, gold %+d", res.PlayerWins, res.ComputerWins, res.Payout))
	e.log.WithContext(ctx).Info("drunkard settled",
		zap.Int("bet", res.Bet),
		zap.Int("rounds", res.Rounds),
		zap.Int("payout", res.Payout),
	)
	return res
}
