package actors

import (
	"context"
	"fmt"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"

	"Stronghold/internal/amenity"
	"Stronghold/internal/match/app/port"
	"Stronghold/internal/match/dc"
	"Stronghold/internal/match/entity"
	"Stronghold/internal/match/service"
	"Stronghold/internal/shared/actor/messages"
	"Stronghold/internal/shared/utils"
	"Stronghold/modules/kit/logx"
	"Stronghold/modules/kit/tracex"
)

type State int

const (
	None State = iota
	Online
	Stopping
	Offline
)

// Config 是对局 actor 的依赖。Match 必须已经建好（新开局或读档）。
type Config struct {
	Match       *entity.Match
	Dice        utils.Dice
	Saves       port.SaveRepository
	Leaderboard port.LeaderboardRepository
	FlushEvery  time.Duration
	Narrator    amenity.Narrator
	Log         logx.Logger
}

// MatchActor 独占一局对局的全部状态。回合动作、驿站效果、存读档和状态查询
// 都是发给它的消息，按邮箱顺序一个一个处理。
type MatchActor struct {
	state       State
	engine      *service.Engine
	dc          *dc.MatchDC
	leaderboard port.LeaderboardRepository
	log         logx.Logger
	dispatcher  *Dispatcher
	flushStop   chan struct{}
	// 本局成绩是否已经写进排行榜
	recorded bool
}

type flushTick struct{}

func (flushTick) NotInfluenceReceiveTimeout() {}

func NewMatchActor(cfg Config) *MatchActor {
	log := cfg.Log
	if log == nil {
		log = logx.Nop()
	}
	return &MatchActor{
		state:       None,
		engine:      service.NewEngine(cfg.Match, cfg.Dice, log, cfg.Narrator),
		dc:          dc.NewMatchDC(cfg.Saves, cfg.FlushEvery, log),
		leaderboard: cfg.Leaderboard,
		log:         log,
		dispatcher:  NewDispatcher(),
	}
}

func (a *MatchActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		a.dc.Attach(a.engine.Match())
		a.state = Online
		a.startFlushLoop(ctx)
		a.log.WithContext(a.goctx()).Info("match actor started", zap.String("player", a.engine.Match().Player()))
	case *actor.Stopping:
		a.stopFlushLoop()
		closeCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := a.dc.Close(closeCtx); err != nil {
			logx.Failed(a.goctx(), a.log, "match_dc_close", err)
		}
		a.state = Stopping
	case *actor.Stopped:
		a.stopFlushLoop()
		a.state = Offline
	case *actor.Restarting:
		a.stopFlushLoop()
	case flushTick:
		if a.state != Online {
			return
		}
		a.dc.Flush(a.goctx())
	default:
		if a.state != Online {
			if ctx.Sender() != nil {
				ctx.Respond(&messages.MHAck{Err: ErrNotOnline})
			}
			return
		}
		if !a.dispatcher.Dispatch(ctx, a, msg) {
			a.log.WithContext(a.goctx()).Warn("unhandled match message", zap.String("type", fmt.Sprintf("%T", msg)))
		}
	}
}

func (a *MatchActor) Engine() *service.Engine {
	return a.engine
}

func (a *MatchActor) DC() *dc.MatchDC {
	return a.dc
}

// goctx 给日志与存储层用的 context，带上对局 id 与回合号。
func (a *MatchActor) goctx() context.Context {
	m := a.engine.Match()
	ctx := tracex.WithMatchID(context.Background(), string(m.ID()))
	return tracex.WithTurn(ctx, m.Turn())
}

// settleIfOver 对局刚结束时写排行榜并立即存档，失败只记录日志。
func (a *MatchActor) settleIfOver() {
	m := a.engine.Match()
	if !m.Over() || a.recorded {
		return
	}
	a.recorded = true
	ctx := a.goctx()
	if a.leaderboard != nil {
		if err := a.leaderboard.Record(ctx, m.ScoreEntry()); err != nil {
			logx.Failed(ctx, a.log, "leaderboard_record", err,
				zap.String("player", m.Player()),
			)
		}
	}
	if err := a.dc.FlushSync(ctx); err != nil {
		logx.Failed(ctx, a.log, "match_final_save", err)
	}
}

func (a *MatchActor) startFlushLoop(ctx actor.Context) {
	if a.flushStop != nil {
		return
	}
	interval := a.dc.FlushEvery()
	if interval <= 0 {
		return
	}
	a.flushStop = make(chan struct{})
	self := ctx.Self()
	root := ctx.ActorSystem().Root

	go func(stop <-chan struct{}, every time.Duration) {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				root.Send(self, flushTick{})
			case <-stop:
				return
			}
		}
	}(a.flushStop, interval)
}

func (a *MatchActor) stopFlushLoop() {
	if a.flushStop == nil {
		return
	}
	close(a.flushStop)
	a.flushStop = nil
}
