package types

// FailureKind is the closed set of reasons an action is rejected.
type FailureKind string

const (
	FailureNoPackages        FailureKind = "no-packages"
	FailureRetractedPackages FailureKind = "retracted-packages"
	FailureMissingDelta      FailureKind = "missing-delta"
	FailureNotCapable        FailureKind = "not-capable"
)

type PatchOutcome string

const (
	PatchOutcomeApplied   PatchOutcome = "applied"
	PatchOutcomeUnchanged PatchOutcome = "unchanged"
	PatchOutcomeFailed    PatchOutcome = "failed"
)
