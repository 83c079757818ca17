package actors

import (
	"github.com/asynkron/protoactor-go/actor"

	"Stronghold/internal/match/entity"
	"Stronghold/internal/shared/actor/messages"
	"Stronghold/modules/kit/logx"
	"Stronghold/modules/kit/tracex"
)

type MatchHandler struct{}

// 全局实例
var MH = &MatchHandler{}

func (h *MatchHandler) HandleBeginTurn(ctx actor.Context, a *MatchActor, req *messages.HMBeginTurn) {
	ts := a.engine.BeginTurn(a.goctx())
	a.settleIfOver()
	ctx.Respond(&messages.MHTurnStart{Start: ts})
}

func (h *MatchHandler) HandleAct(ctx actor.Context, a *MatchActor, req *messages.HMAct) {
	rep, err := a.engine.Act(a.goctx(), req.Command)
	a.settleIfOver()
	ctx.Respond(&messages.MHReport{Report: rep, Err: err})
}

func (h *MatchHandler) HandleComputerTurn(ctx actor.Context, a *MatchActor, req *messages.HMComputerTurn) {
	rep, err := a.engine.ComputerTurn(a.goctx())
	a.settleIfOver()
	ctx.Respond(&messages.MHReport{Report: rep, Err: err})
}

func (h *MatchHandler) HandleApplyEffect(ctx actor.Context, a *MatchActor, req *messages.HMApplyEffect) {
	err := a.engine.ApplyEffect(a.goctx(), req.Effect)
	ctx.Respond(&messages.MHAck{Err: err})
}

func (h *MatchHandler) HandleSave(ctx actor.Context, a *MatchActor, req *messages.HMSave) {
	err := a.dc.FlushSync(a.goctx())
	if err != nil {
		logx.Failed(a.goctx(), a.log, "match_save", err)
	}
	ctx.Respond(&messages.MHAck{Err: err})
}

// HandleLoad 读档失败时保持当前对局不变。
func (h *MatchHandler) HandleLoad(ctx actor.Context, a *MatchActor, req *messages.HMLoad) {
	cur := a.engine.Match()
	m, err := a.dc.Load(a.goctx(), entity.MatchID(tracex.NewMatchID()), cur.Player())
	if err != nil {
		logx.Rejected(a.goctx(), a.log, "match_load", err)
		ctx.Respond(&messages.MHAck{Err: err})
		return
	}
	a.engine.Reset(m)
	a.recorded = false
	ctx.Respond(&messages.MHAck{})
}

func (h *MatchHandler) HandleState(ctx actor.Context, a *MatchActor, req *messages.HMState) {
	ctx.Respond(&messages.MHState{View: a.engine.View()})
}

func (h *MatchHandler) HandleDrunkardStart(ctx actor.Context, a *MatchActor, req *messages.HMDrunkardStart) {
	err := a.engine.StartDrunkard(a.goctx(), req.Bet)
	ctx.Respond(&messages.MHDrunkard{Err: err})
}

func (h *MatchHandler) HandleDrunkardReveal(ctx actor.Context, a *MatchActor, req *messages.HMDrunkardReveal) {
	round, res, err := a.engine.DrunkardReveal(a.goctx())
	ctx.Respond(&messages.MHDrunkard{Round: round, Result: res, Err: err})
}

func (h *MatchHandler) HandleDrunkardSurrender(ctx actor.Context, a *MatchActor, req *messages.HMDrunkardSurrender) {
	res, err := a.engine.DrunkardSurrender(a.goctx())
	if err != nil {
		ctx.Respond(&messages.MHDrunkard{Err: err})
		return
	}
	ctx.Respond(&messages.MHDrunkard{Result: &res})
}
