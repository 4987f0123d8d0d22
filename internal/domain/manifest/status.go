package manifest

// Status is the manifest lifecycle status.
type Status string

const (
	StatusDraft      Status = "DRAFT"
	StatusOpen       Status = "OPEN"
	StatusBuilding   Status = "BUILDING"
	StatusClosed     Status = "CLOSED"
	StatusDeparted   Status = "DEPARTED"
	StatusArrived    Status = "ARRIVED"
	StatusReconciled Status = "RECONCILED"
)

// transitions is the exact lifecycle table. No implicit self-loops;
// RECONCILED is terminal.
var transitions = map[Status][]Status{
	StatusDraft:      {StatusBuilding, StatusOpen, StatusClosed},
	StatusOpen:       {StatusBuilding, StatusClosed},
	StatusBuilding:   {StatusClosed, StatusOpen},
	StatusClosed:     {StatusDeparted},
	StatusDeparted:   {StatusArrived},
	StatusArrived:    {StatusReconciled},
	StatusReconciled: {},
}

// IsValidTransition reports whether from -> to appears in the lifecycle
// table. Unknown statuses fail closed.
func IsValidTransition(from, to Status) bool {
	next, ok := transitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

// Editable reports whether a manifest in status s accepts item changes.
func (s Status) Editable() bool {
	switch s {
	case StatusOpen, StatusDraft, StatusBuilding:
		return true
	default:
		return false
	}
}

// AllStatuses lists every known manifest status, in lifecycle order.
func AllStatuses() []Status {
	return []Status{
		StatusDraft, StatusOpen, StatusBuilding, StatusClosed,
		StatusDeparted, StatusArrived, StatusReconciled,
	}
}
