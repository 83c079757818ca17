package ws

import (
	"encoding/json"

	"Stronghold/modules/kit/errx"
)

// Validator 由请求参数实现，BindMsg 解码后调用。
type Validator interface {
	Validate() error
}

// BindMsg 把观战请求的 msg 解到 dst。
// msg 缺省时 dst 保持零值（查询参数都是可选的）；解码失败返回带路由名的 ErrInvalidInput。
func BindMsg(req *WsMsgReq, dst any) error {
	if req == nil || req.Body == nil {
		return errx.ErrInvalidInput.WithData("body", "nil")
	}
	if req.Body.Msg != nil {
		raw, err := json.Marshal(req.Body.Msg)
		if err != nil {
			return errx.ErrInvalidInput.WithData("route", req.Body.Name).WithCause(err)
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return errx.ErrInvalidInput.WithData("route", req.Body.Name).WithCause(err)
		}
	}
	if v, ok := dst.(Validator); ok {
		return v.Validate()
	}
	return nil
}
