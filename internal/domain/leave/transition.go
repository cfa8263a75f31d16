package leave

// Effect is the side effect a status transition triggers.
type Effect int

const (
	EffectNone Effect = iota
	EffectConsumeBalance
)

type transitionKey struct {
	from LeaveRequestStatus
	to   LeaveRequestStatus
}

var transitions = map[transitionKey]Effect{
	{LeaveRequestStatusPending, LeaveRequestStatusApproved}: EffectConsumeBalance,
	{LeaveRequestStatusPending, LeaveRequestStatusRejected}: EffectNone,
}

// Transition validates a status change. Moving to the current status is a
// no-op; balance is consumed only on Pending -> Approved.
func Transition(from, to LeaveRequestStatus) (Effect, error) {
	if from == to {
		return EffectNone, nil
	}
	effect, ok := transitions[transitionKey{from, to}]
	if !ok {
		return EffectNone, ErrInvalidTransition
	}
	return effect, nil
}
