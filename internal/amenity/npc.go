package amenity

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"Stronghold/internal/shared/utils"
	"Stronghold/modules/kit/logx"
)

type PoolConfig struct {
	Size    int
	IdleMin time.Duration
	IdleMax time.Duration
	// 每种驿站的候选到访时长，随机取一个；美发店取到最后一档视为造型剪发
	Durations map[Kind][]time.Duration
}

// Pool 是后台访客池：每个访客循环「随机休息 -> 随机挑一个驿站 -> 能进就住满时长」。
// 停止信号只在休息时被观察到，已经开始的到访一定会跑完并归还容量。
type Pool struct {
	stations []*Station
	cfg      PoolConfig
	dice     utils.Dice
	log      logx.Logger

	cancel context.CancelFunc
	group  *errgroup.Group

	completed atomic.Int64
	rejected  atomic.Int64
}

func NewPool(stations []*Station, cfg PoolConfig, dice utils.Dice, log logx.Logger) *Pool {
	if log == nil {
		log = logx.Nop()
	}
	if cfg.IdleMax < cfg.IdleMin {
		cfg.IdleMax = cfg.IdleMin
	}
	return &Pool{stations: stations, cfg: cfg, dice: dice, log: log}
}

func (p *Pool) Start(ctx context.Context) {
	if p.group != nil || len(p.stations) == 0 {
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(runCtx)
	p.cancel, p.group = cancel, g
	for i := 0; i < p.cfg.Size; i++ {
		name := fmt.Sprintf("npc-%d", i+1)
		g.Go(func() error {
			return p.run(gctx, name)
		})
	}
	p.log.Info("npc pool started", zap.Int("size", p.cfg.Size))
}

// Stop 发出停止信号并等待访客退出，ctx 到期则不再等待。
func (p *Pool) Stop(ctx context.Context) error {
	if p.group == nil {
		return nil
	}
	p.cancel()
	done := make(chan error, 1)
	go func() { done <- p.group.Wait() }()
	select {
	case err := <-done:
		p.log.Info("npc pool stopped",
			zap.Int64("completed", p.completed.Load()),
			zap.Int64("rejected", p.rejected.Load()),
		)
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool) Completed() int64 { return p.completed.Load() }
func (p *Pool) Rejected() int64  { return p.rejected.Load() }

func (p *Pool) run(ctx context.Context, name string) error {
	for {
		if !p.idle(ctx) {
			return nil
		}
		p.visitOnce(name)
	}
}

// idle 休息一段随机时长；收到停止信号返回 false。
func (p *Pool) idle(ctx context.Context) bool {
	lo, hi := p.cfg.IdleMin.Milliseconds(), p.cfg.IdleMax.Milliseconds()
	wait := time.Duration(utils.Between(p.dice, int(lo), int(hi))) * time.Millisecond
	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (p *Pool) visitOnce(name string) {
	st := p.stations[p.dice.Intn(len(p.stations))]
	id, ok := st.TryEnter(name)
	if !ok {
		p.rejected.Add(1)
		return
	}
	defer st.Leave(id)

	d, fashion := p.pickDuration(st.Kind())
	_ = st.StartVisit(id, d, fashion)
	p.log.Debug("npc visit",
		zap.String("npc", name),
		zap.String("station", st.Kind().String()),
		zap.Duration("duration", d),
	)
	time.Sleep(d)
	p.completed.Add(1)
}

func (p *Pool) pickDuration(k Kind) (time.Duration, bool) {
	durs := p.cfg.Durations[k]
	if len(durs) == 0 {
		return 0, false
	}
	i := p.dice.Intn(len(durs))
	return durs[i], k == Grooming && len(durs) > 1 && i == len(durs)-1
}
