package errx

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Is_只按code判断(t *testing.T) {
	e1 := NewBiz("NOT_ENOUGH_GOLD", "a").WithData("need", 5)
	e2 := NewBiz("NOT_ENOUGH_GOLD", "b").WithCause(errors.New("x"))
	if !errors.Is(e1, e2) {
		t.Fatalf("期望同 code 视为同一错误，e1=%v e2=%v", e1, e2)
	}
	if errors.Is(e1, NewBiz("OTHER", "a")) {
		t.Fatalf("期望不同 code 不相等")
	}
}

func TestError_哨兵不被派生修改(t *testing.T) {
	base := NewBiz("X", "x")
	_ = base.WithData("k", "v")
	if base.Data() != nil {
		t.Fatalf("期望哨兵 data 仍为空，got=%v", base.Data())
	}
}

func TestError_业务错误不抓栈(t *testing.T) {
	cause := errors.New("disk full")
	err := NewBiz("BIZ", "").WithCause(cause)
	if err.Stack() != nil {
		t.Fatalf("期望 biz 错误不抓栈")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("期望 cause 链保留")
	}
}

func TestError_系统错误只抓一次栈(t *testing.T) {
	inner := NewSys("SYS_A", "").WithCause(errors.New("io"))
	if len(inner.Stack()) == 0 {
		t.Fatalf("期望 sys 错误抓栈")
	}
	outer := NewSys("SYS_B", "").WithCause(inner)
	if outer.Stack() != nil {
		t.Fatalf("期望上层不重复抓栈")
	}
}

func TestCodeOf_穿透fmt包装(t *testing.T) {
	err := fmt.Errorf("load: %w", ErrCorrupt.WithData("line", 3))
	if got := CodeOf(err); got != CodeCorrupt {
		t.Fatalf("期望 code=%s got=%s", CodeCorrupt, got)
	}
	if IsBiz(err) {
		t.Fatalf("期望 CORRUPT 为 sys 错误")
	}
	if !IsBiz(ErrInvalidInput) {
		t.Fatalf("期望 INVALID_INPUT 为 biz 错误")
	}
}

func TestError_Reason(t *testing.T) {
	err := NewBiz("X", "").WithReason(testReason("R1"))
	if err.Reason() != "R1" {
		t.Fatalf("期望 reason=R1 got=%q", err.Reason())
	}
}

type testReason string

func (r testReason) ReasonCode() string { return string(r) }
