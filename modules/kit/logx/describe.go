package logx

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"Stronghold/modules/kit/errx"
)

const (
	maxCauses      = 16
	maxStackFrames = 24
)

// Detail 是从错误链里摊平出来的可读字段。
type Detail struct {
	Error  string
	Code   string
	Msg    string
	Reason string
	Data   map[string]any
	Causes []string
	Origin string
	Stack  string
}

// Describe 取错误链上第一个 *errx.Error 的语义字段，再把 cause 链与栈摊平。
// 普通 error 只填 Error 和 Causes。
func Describe(err error) Detail {
	if err == nil {
		return Detail{}
	}
	d := Detail{Error: err.Error(), Causes: causes(err)}
	var e *errx.Error
	if !errors.As(err, &e) {
		return d
	}
	d.Code = e.CodeText()
	d.Msg = e.Msg()
	d.Reason = e.Reason()
	d.Data = e.Data()
	d.Origin, d.Stack = frames(e.Stack())
	return d
}

func causes(err error) []string {
	var out []string
	for cur := errors.Unwrap(err); cur != nil && len(out) < maxCauses; cur = errors.Unwrap(cur) {
		out = append(out, fmt.Sprintf("%T: %v", cur, cur))
	}
	return out
}

// frames 返回第一帧（出错处）与整段栈文本。
func frames(pcs []uintptr) (origin, stack string) {
	if len(pcs) == 0 {
		return "", ""
	}
	it := runtime.CallersFrames(pcs)
	lines := make([]string, 0, maxStackFrames)
	for len(lines) < maxStackFrames {
		f, more := it.Next()
		if f.Function == "" && f.File == "" {
			break
		}
		lines = append(lines, fmt.Sprintf("%s %s:%d", f.Function, f.File, f.Line))
		if !more {
			break
		}
	}
	if len(lines) == 0 {
		return "", ""
	}
	return lines[0], strings.Join(lines, "\n")
}
