package dto

import "Stronghold/internal/shared/transport"

type Response struct {
	Code int    `json:"code"`
	Msg  string `json:"msg,omitempty"`
	Data any    `json:"data,omitempty"`
}

func Success(data any) Response {
	return Response{Code: int(transport.OK), Data: data}
}

func Error(code transport.BizCode, msg string) Response {
	return Response{Code: int(code), Msg: msg}
}
