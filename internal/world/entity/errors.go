package entity

import "Stronghold/modules/kit/errx"

// Code 是战场规则拒绝的错误码；规则拒绝只让当前动作落空，不会中断回合。
type Code = errx.Code

const (
	CodeNotWalkable      Code = "WORLD_NOT_WALKABLE"
	CodeTooFar           Code = "WORLD_MOVE_TOO_FAR"
	CodeNotEnoughSteps   Code = "WORLD_NOT_ENOUGH_STEPS"
	CodeNotEnoughGold    Code = "WORLD_NOT_ENOUGH_GOLD"
	CodeNoTarget         Code = "WORLD_NO_TARGET"
	CodeOutOfRange       Code = "WORLD_TARGET_OUT_OF_RANGE"
	CodeStructureMissing Code = "WORLD_STRUCTURE_MISSING"
	CodeAlreadyBuilt     Code = "WORLD_ALREADY_BUILT"
	CodeUnknownStructure Code = "WORLD_UNKNOWN_STRUCTURE"
	CodeUnknownTier      Code = "WORLD_UNKNOWN_TIER"
	CodeUnitDead         Code = "WORLD_UNIT_DEAD"
	CodeOutOfBounds      Code = "WORLD_OUT_OF_BOUNDS"
)

var (
	ErrNotWalkable      = errx.NewBiz(CodeNotWalkable, "目标格不可通行")
	ErrTooFar           = errx.NewBiz(CodeTooFar, "超出移动范围")
	ErrNotEnoughSteps   = errx.NewBiz(CodeNotEnoughSteps, "步数不足")
	ErrNotEnoughGold    = errx.NewBiz(CodeNotEnoughGold, "金币不足")
	ErrNoTarget         = errx.NewBiz(CodeNoTarget, "目标格没有单位")
	ErrOutOfRange       = errx.NewBiz(CodeOutOfRange, "目标超出攻击距离")
	ErrStructureMissing = errx.NewBiz(CodeStructureMissing, "缺少解锁建筑")
	ErrAlreadyBuilt     = errx.NewBiz(CodeAlreadyBuilt, "建筑已存在")
	ErrUnknownStructure = errx.NewBiz(CodeUnknownStructure, "未知建筑")
	ErrUnknownTier      = errx.NewBiz(CodeUnknownTier, "未知兵种")
	ErrUnitDead         = errx.NewBiz(CodeUnitDead, "单位已阵亡")
	ErrOutOfBounds      = errx.NewBiz(CodeOutOfBounds, "坐标越界")
)
