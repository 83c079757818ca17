package actors

import "Stronghold/modules/kit/errx"

const (
	CodeNotOnline        errx.Code = "MATCH_NOT_ONLINE"
	CodeUnhandledMessage errx.Code = "MATCH_UNHANDLED_MESSAGE"
)

var (
	ErrNilRequest = errx.ErrInvalidInput.WithData("request", "nil")
	ErrNotOnline  = errx.NewSys(CodeNotOnline, "对局未就绪")
	ErrUnhandled  = errx.NewSys(CodeUnhandledMessage, "对局 actor 不处理该消息")
)
