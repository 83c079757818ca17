package entity

import "Stronghold/modules/kit/errx"

const CodeIncompleteSave errx.Code = "MATCH_INCOMPLETE_SAVE"

var ErrIncompleteSave = errx.NewBiz(CodeIncompleteSave, "存档缺少据点或地形")

const CodeSaveNotFound errx.Code = "MATCH_SAVE_NOT_FOUND"

var ErrSaveNotFound = errx.NewBiz(CodeSaveNotFound, "没有找到存档")

const CodeInvalidPlayerName errx.Code = "MATCH_INVALID_PLAYER_NAME"

var ErrInvalidPlayerName = errx.NewBiz(CodeInvalidPlayerName, "玩家名含有存档分隔符")

const CodeReservedPlayerName errx.Code = "MATCH_RESERVED_PLAYER_NAME"

var ErrReservedPlayerName = errx.NewBiz(CodeReservedPlayerName, "玩家名与电脑重名")
