package messages

import (
	"Stronghold/internal/amenity"
	"Stronghold/internal/match/service"
)

// H = 宿主（控制台/驿站/观战），M = 对局 actor。
// 所有应答都带 Err，规则拒绝与系统错误原样带回调用方。

type HMBeginTurn struct{}

type MHTurnStart struct {
	Start service.TurnStart
	Err   error
}

type HMAct struct {
	Command service.Command
}

type HMComputerTurn struct{}

type MHReport struct {
	Report service.Report
	Err    error
}

type HMApplyEffect struct {
	Effect amenity.Effect
}

// HMSave 立即写存档；HMLoad 用存档替换当前对局。两者都不消耗回合。
type HMSave struct{}

type HMLoad struct{}

type HMState struct{}

type MHState struct {
	View service.MatchView
	Err  error
}

type HMDrunkardStart struct {
	Bet int
}

type HMDrunkardReveal struct{}

type HMDrunkardSurrender struct{}

type MHDrunkard struct {
	Round  service.DrunkardRound
	Result *service.DrunkardResult
	Err    error
}

type MHAck struct {
	Err error
}
