package tracex

import (
	"context"
	"testing"
)

func TestMatchID_RoundTrip(t *testing.T) {
	ctx := WithMatchID(context.Background(), "m-1")
	if got, ok := MatchIDFrom(ctx); !ok || got != "m-1" {
		t.Fatalf("期望 round-trip 成功，got=%q ok=%v", got, ok)
	}
}

func TestTurn_零值视为缺失(t *testing.T) {
	if _, ok := TurnFrom(WithTurn(context.Background(), 0)); ok {
		t.Fatalf("期望 turn=0 视为未设置")
	}
	if n, ok := TurnFrom(WithTurn(context.Background(), 4)); !ok || n != 4 {
		t.Fatalf("期望 turn=4 got=%d ok=%v", n, ok)
	}
}

func TestNewMatchID_不重复(t *testing.T) {
	a, b := NewMatchID(), NewMatchID()
	if a == "" || a == b {
		t.Fatalf("期望生成不同的非空 id，a=%q b=%q", a, b)
	}
}

func TestRequestID_RoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "r-1")
	if id, ok := RequestIDFrom(ctx); !ok || id != "r-1" {
		t.Fatalf("id=%q ok=%v", id, ok)
	}
	if _, ok := RequestIDFrom(context.Background()); ok {
		t.Fatalf("空 ctx 不应有请求 id")
	}
}
