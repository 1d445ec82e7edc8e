package types

type ActionStatus int

const (
	ActionStatusQueued    ActionStatus = 0
	ActionStatusPickedUp  ActionStatus = 1
	ActionStatusCompleted ActionStatus = 2
	ActionStatusFailed    ActionStatus = 3
)

const (
	KickstartStateInjected = "injected"
	KickstartStateFailed   = "failed"

	ActionTypeReboot = "reboot.reboot"
)

// KickstartTransition is the state a kickstart session moves to after a
// kickstart action reports back. NextActionType is empty when no follow-up
// action is expected.
type KickstartTransition struct {
	State          string
	NextActionType string
}

// KickstartUpdate is what gets persisted for a kickstart session.
type KickstartUpdate struct {
	SessionID    int64
	ServerID     int64
	State        string
	NextActionID *int64
}
