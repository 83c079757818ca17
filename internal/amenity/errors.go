package amenity

import "Stronghold/modules/kit/errx"

type Code = errx.Code

const (
	CodeStationFull  Code = "AMENITY_STATION_FULL"
	CodeWaitTimeout  Code = "AMENITY_WAIT_TIMEOUT"
	CodeUnknownOffer Code = "AMENITY_UNKNOWN_OFFER"
	CodeUnknownVisit Code = "AMENITY_UNKNOWN_VISIT"
	CodeUnknownKind  Code = "AMENITY_UNKNOWN_KIND"
)

var (
	ErrStationFull  = errx.NewBiz(CodeStationFull, "驿站已满")
	ErrWaitTimeout  = errx.NewBiz(CodeWaitTimeout, "等待空位超时")
	ErrUnknownOffer = errx.NewBiz(CodeUnknownOffer, "未知服务档位")
	ErrUnknownVisit = errx.NewBiz(CodeUnknownVisit, "到访记录不存在")
	ErrUnknownKind  = errx.NewBiz(CodeUnknownKind, "未知驿站")
)
