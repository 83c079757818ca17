package actors

import (
	"fmt"
	"reflect"

	"github.com/asynkron/protoactor-go/actor"

	"Stronghold/internal/shared/actor/messages"
)

type Dispatcher struct {
	handlers map[reflect.Type]Handler
}

type Handler struct {
	fn      reflect.Value
	reqType reflect.Type
}

func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[reflect.Type]Handler),
	}
	d.registerAll()
	return d
}

func (d *Dispatcher) registerAll() {
	register(d, MH.HandleBeginTurn)
	register(d, MH.HandleAct)
	register(d, MH.HandleComputerTurn)
	register(d, MH.HandleApplyEffect)
	register(d, MH.HandleSave)
	register(d, MH.HandleLoad)
	register(d, MH.HandleState)
	register(d, MH.HandleDrunkardStart)
	register(d, MH.HandleDrunkardReveal)
	register(d, MH.HandleDrunkardSurrender)
}

// register 按请求的指针类型注册处理函数，同一类型重复注册直接 panic。
func register[Req any](
	d *Dispatcher,
	fn func(ctx actor.Context, a *MatchActor, req Req),
) {
	reqType := reflect.TypeOf((*Req)(nil)).Elem()
	if reqType.Kind() != reflect.Ptr {
		panic("dispatcher req type must be pointer message")
	}
	if _, dup := d.handlers[reqType]; dup {
		panic(fmt.Sprintf("dispatcher handler registered twice: %s", reqType))
	}
	d.handlers[reqType] = Handler{
		fn:      reflect.ValueOf(fn),
		reqType: reqType,
	}
}

// Dispatch 找不到处理函数时返回 false；若是 ask 则先回 ErrUnhandled，不让对方干等超时。
func (d *Dispatcher) Dispatch(ctx actor.Context, a *MatchActor, msg any) bool {
	handler, ok := d.handlers[reflect.TypeOf(msg)]
	if !ok {
		if ctx.Sender() != nil {
			ctx.Respond(&messages.MHAck{Err: ErrUnhandled.WithData("type", fmt.Sprintf("%T", msg))})
		}
		return false
	}
	if reflect.ValueOf(msg).IsNil() {
		ctx.Respond(&messages.MHAck{Err: ErrNilRequest})
		return true
	}
	handler.fn.Call([]reflect.Value{
		reflect.ValueOf(ctx),
		reflect.ValueOf(a),
		reflect.ValueOf(msg),
	})
	return true
}
