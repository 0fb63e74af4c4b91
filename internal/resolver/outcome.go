package resolver

import "github.com/tunetype/tunetype/internal/models"

// State is the terminal state of a resolution run.
type State int

const (
	// StateRendered means a full report is available for display.
	StateRendered State = iota
	// StateUnavailable means the run failed in a defined way; Reason narrows it.
	StateUnavailable
	// StateAuthMissing means there is no credential and no shared id to
	// resolve. Callers should prompt for login rather than show an error.
	StateAuthMissing
)

func (s State) String() string {
	switch s {
	case StateRendered:
		return "rendered"
	case StateUnavailable:
		return "unavailable"
	case StateAuthMissing:
		return "auth-missing"
	default:
		return "unknown"
	}
}

// Reason narrows a non-rendered outcome.
type Reason int

const (
	ReasonNone Reason = iota
	// ReasonNoCredential: personal flow requested without a stored credential.
	ReasonNoCredential
	// ReasonIdentityUnresolvable: the identity check failed and the personal
	// flow cannot proceed without it.
	ReasonIdentityUnresolvable
	// ReasonSharedNotFound: the shared id is unknown to the report store.
	ReasonSharedNotFound
	// ReasonServiceUnavailable: an external call failed during shared lookup
	// or recompute. Covers top-tracks, scoring, and persist failures.
	ReasonServiceUnavailable
	// ReasonSuperseded: a newer run started before this one finished; its
	// result was discarded without committing.
	ReasonSuperseded
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonNoCredential:
		return "no-credential"
	case ReasonIdentityUnresolvable:
		return "identity-unresolvable"
	case ReasonSharedNotFound:
		return "shared-not-found"
	case ReasonServiceUnavailable:
		return "service-unavailable"
	case ReasonSuperseded:
		return "superseded"
	default:
		return "unknown"
	}
}

// Outcome is the discriminated result of a resolution run. Downstream
// rendering consumes it read-only.
type Outcome struct {
	State  State
	Reason Reason
	Report *models.Report

	// Shared marks shared presentation mode. It controls presentation only
	// and never alters the fetched report.
	Shared bool

	// Owned is set on shared outcomes when the report belongs to the
	// current viewer. Presentation may use it to offer the personal view;
	// no automatic redirect happens.
	Owned bool
}

// Rendered reports whether the outcome carries a displayable report.
func (o Outcome) Rendered() bool {
	return o.State == StateRendered && o.Report != nil
}

func rendered(report *models.Report, sharedView, owned bool) Outcome {
	return Outcome{State: StateRendered, Report: report, Shared: sharedView, Owned: owned}
}

func unavailable(reason Reason) Outcome {
	return Outcome{State: StateUnavailable, Reason: reason}
}

func authMissing() Outcome {
	return Outcome{State: StateAuthMissing, Reason: ReasonNoCredential}
}
