package app

import "Stronghold/modules/kit/errx"

const CodeUnknownStation errx.Code = "SPECTATOR_UNKNOWN_STATION"

var ErrUnknownStation = errx.NewBiz(CodeUnknownStation, "没有这个驿站")
