package amenity

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"Stronghold/modules/kit/logx"
)

const playerVisitor = "player"

// Narrator 接收给玩家看的叙述文本。
type Narrator interface {
	Narrate(ctx context.Context, line string)
}

// Concierge 处理人类玩家的到访：占位、计时、结算效果、释放容量。
// 每次到访在独立 goroutine 里跑完，计时开始后不可取消。
type Concierge struct {
	stations     map[Kind]*Station
	applier      Applier
	narrator     Narrator
	log          logx.Logger
	fashionBonus time.Duration
	waitTimeout  time.Duration

	wg sync.WaitGroup
}

type ConciergeConfig struct {
	FashionBonus time.Duration
	WaitTimeout  time.Duration
}

func NewConcierge(stations map[Kind]*Station, applier Applier, narrator Narrator, log logx.Logger, cfg ConciergeConfig) *Concierge {
	if log == nil {
		log = logx.Nop()
	}
	if cfg.FashionBonus <= 0 {
		cfg.FashionBonus = 3 * time.Second
	}
	if cfg.WaitTimeout <= 0 {
		cfg.WaitTimeout = 30 * time.Second
	}
	return &Concierge{
		stations:     stations,
		applier:      applier,
		narrator:     narrator,
		log:          log,
		fashionBonus: cfg.FashionBonus,
		waitTimeout:  cfg.WaitTimeout,
	}
}

func (c *Concierge) Station(k Kind) (*Station, bool) {
	st, ok := c.stations[k]
	return st, ok
}

// Visit 非阻塞到访，满员返回 ErrStationFull。
func (c *Concierge) Visit(ctx context.Context, k Kind, choice int) (VisitID, error) {
	st, offer, err := c.resolve(k, choice)
	if err != nil {
		return 0, err
	}
	id, ok := st.TryEnter(playerVisitor)
	if !ok {
		return 0, ErrStationFull.WithData("station", k.String())
	}
	c.start(ctx, st, id, offer)
	return id, nil
}

// WaitAndVisit 在后台等待空位（最多 waitTimeout），拿到后开始到访。立即返回。
func (c *Concierge) WaitAndVisit(ctx context.Context, k Kind, choice int) error {
	st, offer, err := c.resolve(k, choice)
	if err != nil {
		return err
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		waitCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.waitTimeout)
		defer cancel()
		id, err := st.Enter(waitCtx, playerVisitor)
		if err != nil {
			c.narrate(ctx, fmt.Sprintf("%s: no free slot after waiting %s", k, c.waitTimeout))
			logx.Rejected(ctx, c.log, "amenity_wait", err)
			return
		}
		c.narrate(ctx, fmt.Sprintf("%s: a slot freed up, your visit starts", k))
		c.start(ctx, st, id, offer)
	}()
	return nil
}

func (c *Concierge) resolve(k Kind, choice int) (*Station, Offer, error) {
	st, ok := c.stations[k]
	if !ok {
		return nil, Offer{}, ErrUnknownKind.WithData("station", k.String())
	}
	offer, ok := FindOffer(k, choice)
	if !ok {
		return nil, Offer{}, ErrUnknownOffer.WithData("station", k.String()).WithData("choice", choice)
	}
	return st, offer, nil
}

func (c *Concierge) start(ctx context.Context, st *Station, id VisitID, offer Offer) {
	_ = st.StartVisit(id, offer.Duration, offer.Fashion)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer st.Leave(id)

		time.Sleep(offer.Duration)
		bg := context.WithoutCancel(ctx)
		for _, e := range EffectsOf(offer) {
			e.VisitID = id
			c.apply(bg, e)
		}
		c.narrate(bg, fmt.Sprintf("%s: %s finished", offer.Kind, offer.Label))
		if offer.Fashion {
			c.scheduleRestore(bg, id)
		}
	}()
}

// scheduleRestore 到访结束后再过 fashionBonus 撤销缩短占领时间的效果，与回合无关。
func (c *Concierge) scheduleRestore(ctx context.Context, id VisitID) {
	c.wg.Add(1)
	time.AfterFunc(c.fashionBonus, func() {
		defer c.wg.Done()
		c.apply(ctx, Effect{Station: Grooming, Kind: EffectCaptureRestored, VisitID: id})
	})
}

func (c *Concierge) apply(ctx context.Context, e Effect) {
	if c.applier == nil {
		return
	}
	if err := c.applier.ApplyEffect(ctx, e); err != nil {
		logx.Failed(ctx, c.log, "amenity_apply_effect", err,
			zap.String("effect", e.Kind.String()),
			zap.Int64("visit_id", int64(e.VisitID)),
		)
	}
}

func (c *Concierge) narrate(ctx context.Context, line string) {
	if c.narrator != nil {
		c.narrator.Narrate(ctx, line)
	}
}

// Wait 等待所有到访与延时效果结束；ctx 到期时提前返回。
func (c *Concierge) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
