package logx

import (
	"context"

	"Stronghold/modules/kit/tracex"

	"go.uber.org/zap"
)

// ZapLogger 把 zap 适配成 logx.Logger，并从 ctx 里取对局 id、回合号与请求 id。
type ZapLogger struct {
	logger *zap.Logger
}

func NewZapLogger(l *zap.Logger) *ZapLogger {
	if l == nil {
		return &ZapLogger{logger: zap.NewNop()}
	}
	return &ZapLogger{logger: l}
}

func (z *ZapLogger) WithContext(ctx context.Context) Logger {
	if z == nil {
		return NewZapLogger(nil)
	}
	l := z.logger
	if id, ok := tracex.MatchIDFrom(ctx); ok {
		l = l.With(zap.String("match_id", id))
	}
	if turn, ok := tracex.TurnFrom(ctx); ok {
		l = l.With(zap.Int("turn", turn))
	}
	if id, ok := tracex.RequestIDFrom(ctx); ok {
		l = l.With(zap.String("request_id", id))
	}
	return &ZapLogger{logger: l}
}

func (z *ZapLogger) Info(msg string, fields ...zap.Field) {
	z.logger.Info(msg, fields...)
}

func (z *ZapLogger) Error(msg string, fields ...zap.Field) {
	z.logger.Error(msg, fields...)
}

func (z *ZapLogger) Debug(msg string, fields ...zap.Field) {
	z.logger.Debug(msg, fields...)
}

func (z *ZapLogger) Warn(msg string, fields ...zap.Field) {
	z.logger.Warn(msg, fields...)
}

// Nop 返回一个丢弃所有输出的 Logger，测试与未初始化场景使用。
func Nop() Logger {
	return NewZapLogger(nil)
}
