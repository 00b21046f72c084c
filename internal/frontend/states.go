package frontend

type LocationState uint8

const (
	LocationIdle LocationState = iota
	LocationLoading
	Located
	LocationFailed
)

func (s LocationState) String() string {
	switch s {
	case LocationIdle:
		return "idle"
	case LocationLoading:
		return "loading"
	case Located:
		return "located"
	case LocationFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type DomainState uint8

const (
	DomainIdle DomainState = iota
	DomainLookedUp
	DomainLookupFailed
)

func (s DomainState) String() string {
	switch s {
	case DomainIdle:
		return "idle"
	case DomainLookedUp:
		return "looked up"
	case DomainLookupFailed:
		return "failed"
	default:
		return "unknown"
	}
}

type CounterState uint8

const (
	CounterIdle CounterState = iota
	CounterKnown
)
