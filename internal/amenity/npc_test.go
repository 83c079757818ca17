package amenity

import (
	"context"
	"testing"
	"time"

	"Stronghold/internal/shared/utils"
)

func TestPool_跑一段时间后停止并归还全部容量(t *testing.T) {
	ids := utils.MustSnowflake(3)
	stations := []*Station{
		NewStation(Lodging, 0, ids),
		NewStation(Dining, 0, ids),
		NewStation(Grooming, 0, ids),
	}
	cfg := PoolConfig{
		Size:    10,
		IdleMin: time.Millisecond,
		IdleMax: 3 * time.Millisecond,
		Durations: map[Kind][]time.Duration{
			Lodging:  {time.Millisecond, 3 * time.Millisecond},
			Dining:   {2 * time.Millisecond},
			Grooming: {time.Millisecond, 2 * time.Millisecond},
		},
	}
	p := NewPool(stations, cfg, utils.NewDice(9), nil)
	p.Start(context.Background())
	time.Sleep(100 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := p.Stop(ctx); err != nil {
		t.Fatalf("Stop err=%v", err)
	}
	if p.Completed() == 0 {
		t.Fatalf("期望至少完成一次到访")
	}
	for _, st := range stations {
		if st.Occupancy() != 0 {
			t.Fatalf("%s 停止后 occupancy=%d", st.Kind(), st.Occupancy())
		}
	}
}

func TestPool_造型剪发取最后一档(t *testing.T) {
	p := NewPool(nil, PoolConfig{Durations: map[Kind][]time.Duration{
		Grooming: {time.Second, 3 * time.Second},
	}}, utils.NewSeqDice(1), nil)
	d, fashion := p.pickDuration(Grooming)
	if d != 3*time.Second || !fashion {
		t.Fatalf("d=%v fashion=%v", d, fashion)
	}
}
