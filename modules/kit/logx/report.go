package logx

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Access 记录一次观战请求（http / ws）。
// biz_code 为 0 记 INFO，>= 500 记 ERROR，其余记 WARN。
func Access(ctx context.Context, l Logger, action string, bizCode int, fields ...zap.Field) {
	if l == nil {
		return
	}
	base := append([]zap.Field{
		zap.String("log_type", "access"),
		zap.String("action", action),
		zap.Int("biz_code", bizCode),
	}, fields...)
	withCtx := l.WithContext(ctx)
	switch {
	case bizCode == 0:
		withCtx.Info("access", base...)
	case bizCode >= 500:
		withCtx.Error("access", base...)
	default:
		withCtx.Warn("access", base...)
	}
}

// Rejected 记录规则拒绝：INFO，err_type=biz，不带栈。
// 金币不足、步数不足、驿站已满这类拒绝在对局里很常见，不算故障。
func Rejected(ctx context.Context, l Logger, action string, err error, fields ...zap.Field) {
	if l == nil || err == nil {
		return
	}
	d := Describe(err)
	base := []zap.Field{
		zap.String("err_type", "biz"),
		zap.String("action", action),
	}
	if d.Code != "" {
		base = append(base, zap.String("error_code", d.Code))
	}
	if d.Reason != "" {
		base = append(base, zap.String("reason", d.Reason))
	}
	if len(d.Data) != 0 {
		base = append(base, zap.Any("error_data", d.Data))
	}
	base = append(base, fields...)

	msg := action
	switch {
	case d.Code != "" && d.Msg != "":
		msg = fmt.Sprintf("%s rejected, %s: %s", action, d.Code, d.Msg)
	case d.Code != "":
		msg = fmt.Sprintf("%s rejected, %s", action, d.Code)
	default:
		msg = fmt.Sprintf("%s rejected, %s", action, d.Error)
	}
	l.WithContext(ctx).Info(msg, base...)
}

// Failed 记录技术故障：ERROR，err_type=sys，带 cause 链和首次包装处的栈。
func Failed(ctx context.Context, l Logger, action string, err error, fields ...zap.Field) {
	if l == nil || err == nil {
		return
	}
	d := Describe(err)
	base := []zap.Field{
		zap.String("err_type", "sys"),
		zap.String("action", action),
	}
	if d.Code != "" {
		base = append(base, zap.String("error_code", d.Code))
	}
	if len(d.Causes) != 0 {
		base = append(base, zap.Strings("cause_chain", d.Causes))
	}
	if len(d.Data) != 0 {
		base = append(base, zap.Any("error_data", d.Data))
	}
	if d.Origin != "" {
		base = append(base, zap.String("origin_caller", d.Origin))
	}
	if d.Stack != "" {
		base = append(base, zap.String("stack_origin", d.Stack))
	}
	base = append(base, fields...)
	l.WithContext(ctx).Error(fmt.Sprintf("%s failed: %s", action, d.Error), base...)
}
