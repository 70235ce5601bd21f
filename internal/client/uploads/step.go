package uploads

import "fmt"

// Step identifies where in the attempt sequence a task currently is.
type Step int

const (
	StepIdle Step = iota
	StepSessionCheck
	StepPrepareFile
	StepTransportPrimary
	StepTransportFallback
	StepPersistMetadata
	StepFinalize
)

func (s Step) String() string {
	switch s {
	case StepIdle:
		return "idle"
	case StepSessionCheck:
		return "session_check"
	case StepPrepareFile:
		return "prepare_file"
	case StepTransportPrimary:
		return "transport_primary"
	case StepTransportFallback:
		return "transport_fallback"
	case StepPersistMetadata:
		return "persist_metadata"
	case StepFinalize:
		return "finalize"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// displayIndex collapses the two transport legs into one user-visible step,
// giving the "Step X/4" numbering hosts render.
func (s Step) displayIndex() int {
	switch s {
	case StepSessionCheck, StepPrepareFile:
		return 1
	case StepTransportPrimary, StepTransportFallback:
		return 2
	case StepPersistMetadata:
		return 3
	case StepFinalize:
		return 4
	default:
		return 0
	}
}

// Status is the progress snapshot published after every state transition.
// Percent is meaningful only during TransportPrimary.
type Status struct {
	Step    Step
	Attempt int
	Percent int
}

// Display renders the host-facing "Step X/4 (Y%)" form.
func (s Status) Display() string {
	if s.Step == StepTransportPrimary {
		return fmt.Sprintf("Step %d/4 (%d%%)", s.Step.displayIndex(), s.Percent)
	}
	return fmt.Sprintf("Step %d/4", s.Step.displayIndex())
}

// Outcome is the terminal disposition of a task. Every Run resolves to
// exactly one of these; there is no silent failure path.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeFailed
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailed:
		return "failed"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result is what Run returns. URL is set on success; Err on failure.
type Result struct {
	Outcome  Outcome
	URL      string
	Attempts int
	Err      *Error
}
