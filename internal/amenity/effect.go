package amenity

import "context"

// EffectKind 是到访结束后作用在人类据点上的效果。
type EffectKind int8

const (
	EffectHealth EffectKind = iota + 1
	EffectMovement
	EffectCaptureReduced
	EffectCaptureRestored
)

func (k EffectKind) String() string {
	switch k {
	case EffectHealth:
		return "health"
	case EffectMovement:
		return "movement"
	case EffectCaptureReduced:
		return "capture_reduced"
	case EffectCaptureRestored:
		return "capture_restored"
	default:
		return "unknown"
	}
}

type Effect struct {
	Station Kind
	Kind    EffectKind
	Amount  int
	VisitID VisitID
}

// Applier 把效果交给拥有据点状态的一方执行（对局 actor），
// 效果与回合动作在同一个邮箱里串行。
type Applier interface {
	ApplyEffect(ctx context.Context, e Effect) error
}

// EffectsOf 返回一个档位在到访结束时触发的效果。
func EffectsOf(o Offer) []Effect {
	var out []Effect
	if o.HealthBonus > 0 {
		out = append(out, Effect{Station: o.Kind, Kind: EffectHealth, Amount: o.HealthBonus})
	}
	if o.MovementBonus > 0 {
		out = append(out, Effect{Station: o.Kind, Kind: EffectMovement, Amount: o.MovementBonus})
	}
	if o.Fashion {
		out = append(out, Effect{Station: o.Kind, Kind: EffectCaptureReduced})
	}
	return out
}
