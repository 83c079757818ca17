package service

import (
	world "Stronghold/internal/world/entity"
)

// Action 是一回合内可执行的动作，编号与控制台菜单一致。
type Action int8

const (
	ActionMove Action = iota + 1
	ActionRecruit
	ActionSkip
	ActionAttack
	ActionBuild
	ActionMoveAttack
)

// 电脑只在前五个动作里均匀随机
const computerActions = 5

func (a Action) String() string {
	switch a {
	case ActionMove:
		return "move"
	case ActionRecruit:
		return "recruit"
	case ActionSkip:
		return "skip"
	case ActionAttack:
		return "attack"
	case ActionBuild:
		return "build"
	case ActionMoveAttack:
		return "move_attack"
	default:
		return "unknown"
	}
}

func (a Action) Valid() bool {
	return a >= ActionMove && a <= ActionMoveAttack
}

// Order 是对名册里一个单位的指令。移动类动作用 To，攻击类动作用 Target。
// Stay / HoldFire 让该单位跳过移动 / 攻击。
type Order struct {
	To       world.Point
	Target   world.Point
	Stay     bool
	HoldFire bool
}

// Command 是人类玩家的一次回合动作。
// Orders 按动作开始时的名册顺序一一对应，缺少指令的单位原地不动。
type Command struct {
	Action    Action
	Tier      world.Tier
	Structure string
	Orders    []Order
}

// Report 是一次回合动作的结果。规则拒绝记在 Rejected 里，回合照常消耗。
type Report struct {
	Faction         world.Faction
	Action          Action
	Lines           []string
	Rejected        []error
	DrunkardOffered bool
}

func (r *Report) add(line string) {
	r.Lines = append(r.Lines, line)
}

func (r *Report) reject(err error) {
	r.Rejected = append(r.Rejected, err)
}
