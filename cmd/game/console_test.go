package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"Stronghold/internal/amenity"
	"Stronghold/internal/shared/utils"
)

type stubDesk struct {
	stations map[amenity.Kind]*amenity.Station
	visits   int
}

func (d *stubDesk) Station(k amenity.Kind) (*amenity.Station, bool) {
	st, ok := d.stations[k]
	return st, ok
}

func (d *stubDesk) Visit(context.Context, amenity.Kind, int) (amenity.VisitID, error) {
	d.visits++
	return 1, nil
}

func (d *stubDesk) WaitAndVisit(context.Context, amenity.Kind, int) error {
	return nil
}

func TestConsole_Visit_先展示空位与在场访客(t *testing.T) {
	now := time.Unix(1000, 0)
	st := amenity.NewStation(amenity.Lodging, 0, utils.MustSnowflake(1), amenity.WithClock(func() time.Time { return now }))
	expired, _ := st.TryEnter("bob")
	_ = st.StartVisit(expired, time.Second, false)
	live, _ := st.TryEnter("carol")
	_ = st.StartVisit(live, 5*time.Second, false)
	now = now.Add(2 * time.Second)

	var out bytes.Buffer
	desk := &stubDesk{stations: map[amenity.Kind]*amenity.Station{amenity.Lodging: st}}
	c := &console{p: newPrompter(strings.NewReader("0\n"), &out), desk: desk}
	if err := c.visit(context.Background(), amenity.Lodging); err != nil {
		t.Fatalf("err=%v", err)
	}

	text := out.String()
	// 到期的 bob 在查询时被回收，只剩 carol 占一间
	if !strings.Contains(text, "free slots: 4/5") {
		t.Fatalf("缺少空位信息 out=%q", text)
	}
	if !strings.Contains(text, "carol, 3s left") || strings.Contains(text, "bob") {
		t.Fatalf("在场访客列表不对 out=%q", text)
	}
	if strings.Index(text, "free slots") > strings.Index(text, "1. ") {
		t.Fatalf("空位信息应在选项之前 out=%q", text)
	}
	if desk.visits != 0 {
		t.Fatalf("选 0 不应发起到访")
	}
}

func TestConsole_Visit_理发显示剪发类型(t *testing.T) {
	now := time.Unix(1000, 0)
	st := amenity.NewStation(amenity.Grooming, 0, utils.MustSnowflake(2), amenity.WithClock(func() time.Time { return now }))
	id, _ := st.TryEnter("player")
	_ = st.StartVisit(id, 4*time.Second, true)
	st.TryEnter("dave")

	var out bytes.Buffer
	desk := &stubDesk{stations: map[amenity.Kind]*amenity.Station{amenity.Grooming: st}}
	c := &console{p: newPrompter(strings.NewReader("0\n"), &out), desk: desk}
	if err := c.visit(context.Background(), amenity.Grooming); err != nil {
		t.Fatalf("err=%v", err)
	}
	text := out.String()
	for _, want := range []string{"free slots: 0/2", "player, fashion cut, 4s left", "dave (waiting)"} {
		if !strings.Contains(text, want) {
			t.Fatalf("期望包含 %q out=%q", want, text)
		}
	}
}

func TestAskName_拒绝电脑的名字(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("Computer\na/b\nalice\n"), &out)
	name, err := askName(p, "player")
	if err != nil || name != "alice" {
		t.Fatalf("name=%q err=%v", name, err)
	}
	text := out.String()
	if !strings.Contains(text, `"Computer" is taken`) || !strings.Contains(text, "cannot contain") {
		t.Fatalf("两次非法输入都应提示 out=%q", text)
	}
}
