package service

import "Stronghold/modules/kit/errx"

const (
	CodeGameOver        errx.Code = "MATCH_GAME_OVER"
	CodeNotYourTurn     errx.Code = "MATCH_NOT_YOUR_TURN"
	CodeUnknownAction   errx.Code = "MATCH_UNKNOWN_ACTION"
	CodeNoDrunkardOffer errx.Code = "MATCH_NO_DRUNKARD_OFFER"
	CodeDrunkardActive  errx.Code = "MATCH_DRUNKARD_ACTIVE"
	CodeNoDrunkard      errx.Code = "MATCH_NO_DRUNKARD"
	CodeInvalidBet      errx.Code = "MATCH_INVALID_BET"
)

var (
	ErrGameOver        = errx.NewBiz(CodeGameOver, "对局已结束")
	ErrNotYourTurn     = errx.NewBiz(CodeNotYourTurn, "当前不是该阵营的回合")
	ErrUnknownAction   = errx.NewBiz(CodeUnknownAction, "未知动作")
	ErrNoDrunkardOffer = errx.NewBiz(CodeNoDrunkardOffer, "没有可开始的酒馆牌局")
	ErrDrunkardActive  = errx.NewBiz(CodeDrunkardActive, "酒馆牌局进行中")
	ErrNoDrunkard      = errx.NewBiz(CodeNoDrunkard, "没有进行中的酒馆牌局")
	ErrInvalidBet      = errx.NewBiz(CodeInvalidBet, "赌注必须在 1 到当前金币之间")
)
