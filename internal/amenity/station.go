package amenity

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	cmap "github.com/orcaman/concurrent-map"
	"golang.org/x/sync/semaphore"

	"Stronghold/internal/shared/utils"
)

type VisitID int64

func (id VisitID) key() string {
	return strconv.FormatInt(int64(id), 10)
}

// visit 是一次到访的元数据。released 保证容量只归还一次。
type visit struct {
	id       VisitID
	visitor  string
	released atomic.Bool

	mu      sync.Mutex
	endAt   time.Time
	fashion bool
	started bool
}

func (v *visit) start(endAt time.Time, fashion bool) {
	v.mu.Lock()
	v.endAt, v.fashion, v.started = endAt, fashion, true
	v.mu.Unlock()
}

func (v *visit) view() (endAt time.Time, fashion, started bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.endAt, v.fashion, v.started
}

// VisitInfo 是 ActiveVisits 返回的只读快照。
type VisitInfo struct {
	ID        VisitID
	Visitor   string
	Started   bool
	Remaining time.Duration
	Label     string
}

// Station 是容量受限的服务点。
//
// 容量由 semaphore 把关：TryEnter 非阻塞，Enter 阻塞到有空位或 ctx 结束。
// occupied 与已占用的信号量始终一致；每次成功进入都必须对应一次 Leave。
type Station struct {
	kind     Kind
	capacity int
	sem      *semaphore.Weighted
	occupied atomic.Int64
	visits   cmap.ConcurrentMap
	ids      *utils.Snowflake
	now      func() time.Time
}

type StationOption func(*Station)

// WithClock 替换时间源，测试里用来推进时间。
func WithClock(now func() time.Time) StationOption {
	return func(s *Station) {
		s.now = now
	}
}

func NewStation(kind Kind, capacity int, ids *utils.Snowflake, opts ...StationOption) *Station {
	if capacity <= 0 && kind.Valid() {
		capacity = DefaultCapacity[kind]
	}
	s := &Station{
		kind:     kind,
		capacity: capacity,
		sem:      semaphore.NewWeighted(int64(capacity)),
		visits:   cmap.New(),
		ids:      ids,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Station) Kind() Kind    { return s.kind }
func (s *Station) Capacity() int { return s.capacity }

func (s *Station) Occupancy() int {
	return int(s.occupied.Load())
}

func (s *Station) AvailableCapacity() int {
	return s.capacity - s.Occupancy()
}

// TryEnter 非阻塞占位，满员返回 false。
func (s *Station) TryEnter(visitor string) (VisitID, bool) {
	if !s.sem.TryAcquire(1) {
		return 0, false
	}
	return s.admit(visitor), true
}

// Enter 阻塞等待空位，ctx 超时或取消时返回 ErrWaitTimeout。
func (s *Station) Enter(ctx context.Context, visitor string) (VisitID, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return 0, ErrWaitTimeout.WithData("station", s.kind.String()).WithCause(err)
		}
		return 0, err
	}
	return s.admit(visitor), nil
}

func (s *Station) admit(visitor string) VisitID {
	s.occupied.Add(1)
	id := VisitID(s.ids.NextID())
	s.visits.Set(id.key(), &visit{id: id, visitor: visitor})
	return id
}

// StartVisit 记录到访时长；对美发店 fashion 标记为造型剪发。
func (s *Station) StartVisit(id VisitID, d time.Duration, fashion bool) error {
	v, ok := s.lookup(id)
	if !ok {
		return ErrUnknownVisit.WithData("visit_id", int64(id))
	}
	v.start(s.now().Add(d), fashion)
	return nil
}

// Leave 释放容量并删除记录；同一到访重复调用或已被惰性回收时返回 false。
func (s *Station) Leave(id VisitID) bool {
	v, ok := s.lookup(id)
	if !ok {
		return false
	}
	return s.release(v)
}

func (s *Station) release(v *visit) bool {
	if !v.released.CompareAndSwap(false, true) {
		return false
	}
	s.visits.Remove(v.id.key())
	s.occupied.Add(-1)
	s.sem.Release(1)
	return true
}

func (s *Station) lookup(id VisitID) (*visit, bool) {
	raw, ok := s.visits.Get(id.key())
	if !ok {
		return nil, false
	}
	v, ok := raw.(*visit)
	return v, ok
}

// ActiveVisits 返回当前到访快照，按到访 id（即进入先后）排序。
//
//   - Lodging：顺带回收已到期的到访（不依赖访客自己 Leave）
//   - Dining：只列出剩余时长大于 0 的到访
//   - Grooming：附带剪发类型标签
func (s *Station) ActiveVisits() []VisitInfo {
	now := s.now()
	all := s.snapshot()
	out := make([]VisitInfo, 0, len(all))
	for _, v := range all {
		endAt, fashion, started := v.view()
		remaining := time.Duration(0)
		if started {
			remaining = endAt.Sub(now)
		}
		info := VisitInfo{ID: v.id, Visitor: v.visitor, Started: started, Remaining: max(0, remaining)}
		switch s.kind {
		case Lodging:
			if started && remaining <= 0 {
				s.release(v)
				continue
			}
		case Dining:
			if remaining <= 0 {
				continue
			}
		case Grooming:
			info.Label = labelSimple
			if fashion {
				info.Label = labelFashion
			}
		}
		out = append(out, info)
	}
	return out
}

func (s *Station) snapshot() []*visit {
	items := s.visits.Items()
	out := make([]*visit, 0, len(items))
	for _, raw := range items {
		if v, ok := raw.(*visit); ok {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// Stats 是对外展示用的占用摘要。
type Stats struct {
	Kind      string `json:"kind"`
	Capacity  int    `json:"capacity"`
	Occupancy int    `json:"occupancy"`
	Available int    `json:"available"`
}

func (s *Station) Stats() Stats {
	occ := s.Occupancy()
	return Stats{Kind: s.kind.String(), Capacity: s.capacity, Occupancy: occ, Available: s.capacity - occ}
}
