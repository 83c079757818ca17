package dc

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"Stronghold/internal/match/app/port"
	"Stronghold/internal/match/entity"
	"Stronghold/modules/kit/logx"
)

const defaultFlushEvery = 3 * time.Second

// MatchDC 是对局状态的持久化缓存：actor 侧脏检查 + 同步构建快照，写库在后台 goroutine。
// 后台只保留最新版本的快照，旧版本被覆盖。
type MatchDC struct {
	repo       port.SaveRepository
	entity     *entity.Match
	flushEvery time.Duration
	log        logx.Logger

	mu      sync.Mutex
	pending *entity.MatchPersistSnapshot
	version uint64
	closed  bool

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

func NewMatchDC(repo port.SaveRepository, flushEvery time.Duration, log logx.Logger) *MatchDC {
	if flushEvery <= 0 {
		flushEvery = defaultFlushEvery
	}
	if log == nil {
		log = logx.Nop()
	}
	d := &MatchDC{
		repo:       repo,
		flushEvery: flushEvery,
		log:        log,
		wake:       make(chan struct{}, 1),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	go d.writerLoop()
	return d
}

// Attach 换上新的对局（开局或读档之后）。
func (d *MatchDC) Attach(m *entity.Match) {
	d.entity = m
}

// Load 读出玩家存档并重建对局，成功后挂到 DC 上。
func (d *MatchDC) Load(ctx context.Context, id entity.MatchID, player string) (*entity.Match, error) {
	s, err := d.repo.LoadMatch(ctx, player)
	if err != nil {
		return nil, err
	}
	m, err := entity.HydrateMatch(id, s)
	if err != nil {
		return nil, err
	}
	d.entity = m
	return m, nil
}

func (d *MatchDC) Entity() *entity.Match {
	return d.entity
}

func (d *MatchDC) FlushEvery() time.Duration {
	return d.flushEvery
}

func (d *MatchDC) IsDirty() bool {
	return d.entity.Dirty()
}

// Flush 有脏数据时构建快照交给后台写入，不等待落盘。
func (d *MatchDC) Flush(ctx context.Context) {
	if !d.IsDirty() {
		return
	}
	s, ok := d.buildNextSnapshot()
	if !ok {
		return
	}
	d.enqueueLatest(s)
}

// FlushSync 立即写入当前状态，无论是否脏；手动存档与对局结束时使用。
func (d *MatchDC) FlushSync(ctx context.Context) error {
	if d.entity == nil {
		return nil
	}
	d.entity.MarkDirty()
	s, ok := d.buildNextSnapshot()
	if !ok {
		return nil
	}
	if err := d.repo.Snapshot(ctx, s); err != nil {
		d.entity.MarkDirty()
		return err
	}
	// 比后台排队的旧快照新，丢掉它们
	d.mu.Lock()
	if d.pending != nil && d.pending.Version < s.Version {
		d.pending = nil
	}
	d.mu.Unlock()
	return nil
}

func (d *MatchDC) Close(ctx context.Context) error {
	d.Flush(ctx)

	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.stop)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *MatchDC) buildNextSnapshot() (*entity.MatchPersistSnapshot, bool) {
	if d.entity == nil {
		return nil, false
	}
	d.mu.Lock()
	d.version++
	version := d.version
	d.mu.Unlock()

	s, ok := d.entity.BuildPersistSnapshot(version)
	if !ok {
		return nil, false
	}
	d.entity.ClearDirty()
	return s, true
}

func (d *MatchDC) enqueueLatest(s *entity.MatchPersistSnapshot) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	if d.pending == nil || d.pending.Version < s.Version {
		d.pending = s
	}
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *MatchDC) popPending() *entity.MatchPersistSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.pending
	d.pending = nil
	return s
}

func (d *MatchDC) writerLoop() {
	defer close(d.done)

	for {
		select {
		case <-d.wake:
			d.consumePending(false)
		case <-d.stop:
			d.consumePending(true)
			return
		}
	}
}

// consumePending 写库失败时重排快照并稍后重试；关闭时只尝试一次。
func (d *MatchDC) consumePending(closing bool) {
	for {
		s := d.popPending()
		if s == nil {
			return
		}
		err := d.repo.Snapshot(context.Background(), s)
		if err == nil {
			continue
		}
		logx.Failed(context.Background(), d.log, "match_save", err,
			zap.String("player", s.Player),
			zap.Uint64("version", s.Version),
		)
		if closing {
			return
		}
		d.requeue(s)
		select {
		case <-time.After(200 * time.Millisecond):
		case <-d.stop:
			return
		}
	}
}

func (d *MatchDC) requeue(s *entity.MatchPersistSnapshot) {
	d.mu.Lock()
	if d.pending == nil || d.pending.Version < s.Version {
		d.pending = s
	}
	d.mu.Unlock()
}
