package transport

import (
	"Stronghold/modules/kit/errx"
)

// BizCode 表示业务码的强类型封装，用于在日志上下文中减少误传风险。
type BizCode int

// 观战接口回包里的 code，0 成功；1~499 为请求方问题，500 以上为服务端故障。
const (
	OK           BizCode = 0
	InvalidParam BizCode = 400
	NotFound     BizCode = 404
	SystemError  BizCode = 500
	Unavailable  BizCode = 503
	Timeout      BizCode = 504
)

// CodeFromErr 把 errx 错误码映射成回包业务码。
func CodeFromErr(err error) BizCode {
	if err == nil {
		return OK
	}
	switch errx.CodeOf(err) {
	case errx.CodeInvalidInput:
		return InvalidParam
	case errx.CodeUnavailable:
		return Unavailable
	case errx.CodeTimeout:
		return Timeout
	case "":
		return SystemError
	}
	if errx.IsBiz(err) {
		return InvalidParam
	}
	return SystemError
}
