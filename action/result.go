package action

// Result is the outcome reported by a lifecycle hook.
type Result uint8

const (
	Wait Result = iota
	Success
	Fail
	Abort
	Clean
)

func (r Result) String() string {
	switch r {
	case Wait:
		return "Wait"
	case Success:
		return "Success"
	case Fail:
		return "Fail"
	case Abort:
		return "Abort"
	case Clean:
		return "Clean"
	default:
		return "Unknown"
	}
}

// State is the lifecycle position of an action.
type State uint8

const (
	Idle State = iota
	Running
	Succeeded
	Failed
	Aborted
	Cleaned
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Running:
		return "Running"
	case Succeeded:
		return "Succeeded"
	case Failed:
		return "Failed"
	case Aborted:
		return "Aborted"
	case Cleaned:
		return "Cleaned"
	default:
		return "Unknown"
	}
}

// Terminal reports whether no further ticks can happen in s.
func (s State) Terminal() bool {
	return s >= Succeeded
}

func terminalState(r Result) State {
	switch r {
	case Success:
		return Succeeded
	case Abort:
		return Aborted
	case Clean:
		return Cleaned
	default:
		return Failed
	}
}

func resultOf(s State) Result {
	switch s {
	case Running:
		return Wait
	case Succeeded:
		return Success
	case Aborted:
		return Abort
	case Cleaned:
		return Clean
	default:
		return Fail
	}
}

// Finish reasons used by the scheduler itself. Leaves may pass any string.
const (
	ReasonUnknown       = ""
	ReasonConflict      = "category conflict"
	ReasonStopped       = "stopped"
	ReasonStopAll       = "stop all"
	ReasonTeardown      = "teardown"
	ReasonMajorFinished = "major finished"
)
