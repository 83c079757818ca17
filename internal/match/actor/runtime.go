package actor

import (
	"context"
	"errors"
	"time"

	protoactor "github.com/asynkron/protoactor-go/actor"

	"Stronghold/internal/amenity"
	"Stronghold/internal/match/actors"
	"Stronghold/internal/match/service"
	"Stronghold/internal/shared/actor/messages"
	"Stronghold/modules/kit/errx"
)

const defaultAskTimeout = 3 * time.Second

// RuntimeError 是 actor 通道本身的失败（未初始化、超时、应答类型不对），
// 与对局规则拒绝区分开。
type RuntimeError struct {
	Code    errx.Code
	Message string
	Cause   error
}

func (e *RuntimeError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *RuntimeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Runtime 是对局 actor 的同步门面：控制台、驿站与观战接口都经它发消息，
// 因而所有对局状态修改都在 actor 里串行执行。
type Runtime struct {
	system  *protoactor.ActorSystem
	root    *protoactor.RootContext
	match   *protoactor.PID
	timeout time.Duration
}

var _ amenity.Applier = (*Runtime)(nil)

func NewRuntime(cfg actors.Config, askTimeout time.Duration) *Runtime {
	if askTimeout <= 0 {
		askTimeout = defaultAskTimeout
	}
	system := protoactor.NewActorSystem()
	root := system.Root
	props := protoactor.PropsFromProducer(func() protoactor.Actor {
		return actors.NewMatchActor(cfg)
	})
	// 只有一局对局，不需要 manager 路由
	match := root.Spawn(props)

	return &Runtime{
		system:  system,
		root:    root,
		match:   match,
		timeout: askTimeout,
	}
}

// Shutdown 先等对局 actor 停下（期间把最后的存档写完），再关掉 actor system。
func (r *Runtime) Shutdown() {
	if r == nil {
		return
	}
	if r.root != nil && r.match != nil {
		_ = r.root.StopFuture(r.match).Wait()
	}
	if r.system != nil {
		r.system.Shutdown()
	}
}

func (r *Runtime) request(ctx context.Context, msg any) (any, error) {
	if r == nil || r.root == nil || r.match == nil {
		return nil, &RuntimeError{Code: errx.CodeInternal, Message: "actor runtime 未初始化"}
	}
	future := r.root.RequestFuture(r.match, msg, r.timeoutFromContext(ctx))
	res, err := future.Result()
	if err != nil {
		code := errx.CodeInternal
		if errors.Is(err, protoactor.ErrTimeout) {
			code = errx.CodeTimeout
		}
		return nil, &RuntimeError{Code: code, Message: "actor 请求失败", Cause: err}
	}
	if ack, ok := res.(*messages.MHAck); ok && ack.Err != nil {
		// actor 未就绪、请求为空或消息无人处理时统一回 MHAck
		return nil, ack.Err
	}
	return res, nil
}

func (r *Runtime) timeoutFromContext(ctx context.Context) time.Duration {
	if r.timeout <= 0 {
		return defaultAskTimeout
	}
	if ctx == nil {
		return r.timeout
	}
	deadline, ok := ctx.Deadline()
	if !ok {
		return r.timeout
	}
	remain := time.Until(deadline)
	if remain <= 0 {
		return time.Millisecond
	}
	if remain < r.timeout {
		return remain
	}
	return r.timeout
}

func ask[Resp any](r *Runtime, ctx context.Context, msg any) (Resp, error) {
	var zero Resp
	res, err := r.request(ctx, msg)
	if err != nil {
		return zero, err
	}
	resp, ok := res.(Resp)
	if !ok {
		return zero, &RuntimeError{Code: errx.CodeInternal, Message: "actor 返回类型非法"}
	}
	return resp, nil
}

func (r *Runtime) BeginTurn(ctx context.Context) (service.TurnStart, error) {
	resp, err := ask[*messages.MHTurnStart](r, ctx, &messages.HMBeginTurn{})
	if err != nil {
		return service.TurnStart{}, err
	}
	return resp.Start, resp.Err
}

func (r *Runtime) Act(ctx context.Context, cmd service.Command) (service.Report, error) {
	resp, err := ask[*messages.MHReport](r, ctx, &messages.HMAct{Command: cmd})
	if err != nil {
		return service.Report{}, err
	}
	return resp.Report, resp.Err
}

func (r *Runtime) ComputerTurn(ctx context.Context) (service.Report, error) {
	resp, err := ask[*messages.MHReport](r, ctx, &messages.HMComputerTurn{})
	if err != nil {
		return service.Report{}, err
	}
	return resp.Report, resp.Err
}

// ApplyEffect 实现 amenity.Applier，驿站 goroutine 经这里把效果排进对局邮箱。
func (r *Runtime) ApplyEffect(ctx context.Context, e amenity.Effect) error {
	resp, err := ask[*messages.MHAck](r, ctx, &messages.HMApplyEffect{Effect: e})
	if err != nil {
		return err
	}
	return resp.Err
}

func (r *Runtime) Save(ctx context.Context) error {
	_, err := ask[*messages.MHAck](r, ctx, &messages.HMSave{})
	return err
}

func (r *Runtime) Load(ctx context.Context) error {
	_, err := ask[*messages.MHAck](r, ctx, &messages.HMLoad{})
	return err
}

func (r *Runtime) State(ctx context.Context) (service.MatchView, error) {
	resp, err := ask[*messages.MHState](r, ctx, &messages.HMState{})
	if err != nil {
		return service.MatchView{}, err
	}
	return resp.View, resp.Err
}

func (r *Runtime) DrunkardStart(ctx context.Context, bet int) error {
	resp, err := ask[*messages.MHDrunkard](r, ctx, &messages.HMDrunkardStart{Bet: bet})
	if err != nil {
		return err
	}
	return resp.Err
}

func (r *Runtime) DrunkardReveal(ctx context.Context) (service.DrunkardRound, *service.DrunkardResult, error) {
	resp, err := ask[*messages.MHDrunkard](r, ctx, &messages.HMDrunkardReveal{})
	if err != nil {
		return service.DrunkardRound{}, nil, err
	}
	return resp.Round, resp.Result, resp.Err
}

func (r *Runtime) DrunkardSurrender(ctx context.Context) (service.DrunkardResult, error) {
	resp, err := ask[*messages.MHDrunkard](r, ctx, &messages.HMDrunkardSurrender{})
	if err != nil {
		return service.DrunkardResult{}, err
	}
	if resp.Result == nil {
		return service.DrunkardResult{}, resp.Err
	}
	return *resp.Result, resp.Err
}

// CodeFromError 取错误码：RuntimeError 取自身，其余按 errx 规则。
func CodeFromError(err error) errx.Code {
	var re *RuntimeError
	if errors.As(err, &re) && re != nil && re.Code != "" {
		return re.Code
	}
	return errx.CodeOf(err)
}
