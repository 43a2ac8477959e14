package domain

import "fmt"

// IdleReason はセッションがアイドル判定された理由のビットマスクです。
type IdleReason uint8

const (
	IdleNone     IdleReason = 0
	IdleRead     IdleReason = 1 << 0
	IdlePong     IdleReason = 1 << 1
	IdleDisabled IdleReason = 1 << 7 // timeout<=0 のとき
)

func (r IdleReason) Has(x IdleReason) bool { return r&x != 0 }

func (r IdleReason) String() string {
	switch {
	case r == IdleNone:
		return "none"
	case r == IdleDisabled:
		return "disabled"
	case r.Has(IdleRead) && r.Has(IdlePong):
		return "read|pong"
	case r.Has(IdleRead):
		return "read"
	case r.Has(IdlePong):
		return "pong"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(r))
	}
}
