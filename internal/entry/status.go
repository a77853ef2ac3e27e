package entry

import "strings"

// Status represents the lifecycle of an entry.
type Status string

const (
	StatusPending           Status = "pending"
	StatusInProgress        Status = "in-progress"
	StatusInProgressNoDates Status = "in-progress-no-dates"
	StatusCompleted         Status = "completed"
	StatusCompletedNoDates  Status = "completed-no-dates"
)

var allStatuses = []Status{
	StatusPending,
	StatusInProgress,
	StatusInProgressNoDates,
	StatusCompleted,
	StatusCompletedNoDates,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	out := make([]Status, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// ParseStatus converts a string into a Status, returning false when unknown.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := statusSet[normalized]; ok {
		return normalized, true
	}
	return "", false
}

// IsPending reports whether the entry is waiting to be started.
func (s Status) IsPending() bool {
	return s == StatusPending
}

// IsInProgress reports whether the status is either in-progress variant.
func (s Status) IsInProgress() bool {
	switch s {
	case StatusInProgress, StatusInProgressNoDates:
		return true
	default:
		return false
	}
}

// IsCompleted reports whether the status is either completed variant.
func (s Status) IsCompleted() bool {
	switch s {
	case StatusCompleted, StatusCompletedNoDates:
		return true
	default:
		return false
	}
}

// IsActive reports whether the entry has left the pending state.
func (s Status) IsActive() bool {
	return s.IsInProgress() || s.IsCompleted()
}

// Label returns the display name for the status.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In progress"
	case StatusInProgressNoDates:
		return "In progress (no dates)"
	case StatusCompleted:
		return "Completed"
	case StatusCompletedNoDates:
		return "Completed (no dates)"
	default:
		return string(s)
	}
}
