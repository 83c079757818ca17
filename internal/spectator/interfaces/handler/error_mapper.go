package handler

import (
	"context"
	"errors"

	"Stronghold/internal/shared/transport"
	"Stronghold/modules/kit/errx"
	"Stronghold/modules/kit/logx"
)

// HandleError 把错误换成回包的 code 与提示；技术故障不把细节回给观战方。
func HandleError(ctx context.Context, log logx.Logger, action string, err error) (transport.BizCode, string) {
	code := transport.CodeFromErr(err)
	transport.SetErrorReason(ctx, string(errx.CodeOf(err)))
	if errx.IsBiz(err) {
		var e *errx.Error
		if errors.As(err, &e) {
			return code, e.Msg()
		}
		return code, err.Error()
	}
	logx.Failed(ctx, log, action, err)
	return code, "系统繁忙，请稍后重试"
}
