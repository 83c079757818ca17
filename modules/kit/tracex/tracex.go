package tracex

import (
	"context"

	"github.com/google/uuid"
)

type matchIDKey struct{}
type turnKey struct{}
type requestIDKey struct{}

// WithMatchID 把对局 id 放进 ctx，日志适配器会自动带上 match_id。
func WithMatchID(ctx context.Context, matchID string) context.Context {
	return context.WithValue(ctx, matchIDKey{}, matchID)
}

func MatchIDFrom(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	s, ok := ctx.Value(matchIDKey{}).(string)
	return s, ok && s != ""
}

// WithTurn 记录当前回合序号（从 1 开始）。
func WithTurn(ctx context.Context, turn int) context.Context {
	return context.WithValue(ctx, turnKey{}, turn)
}

func TurnFrom(ctx context.Context) (int, bool) {
	if ctx == nil {
		return 0, false
	}
	n, ok := ctx.Value(turnKey{}).(int)
	return n, ok && n > 0
}

// NewMatchID 生成一次对局的唯一 id。
func NewMatchID() string {
	return uuid.NewString()
}

// WithRequestID 标记一次观战接口请求。
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFrom(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	s, ok := ctx.Value(requestIDKey{}).(string)
	return s, ok && s != ""
}

func NewRequestID() string {
	return uuid.NewString()
}
