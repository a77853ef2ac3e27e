package entry

// Lifecycle action names used in TransitionError.
const (
	ActionStart  = "start"
	ActionFinish = "finish"
)

// DeriveStatus computes the status of an active entry from which dates are
// recorded and whether a rating is present. A finish date always means
// completed; without dates the rating (including the not-rated sentinel) is
// the completion signal.
func DeriveStatus(start, finish Date, rating Rating) Status {
	switch {
	case !finish.IsZero():
		return StatusCompleted
	case !start.IsZero():
		return StatusInProgress
	case rating.IsSet():
		return StatusCompletedNoDates
	default:
		return StatusInProgressNoDates
	}
}

// InitialStatus returns the status a new entry starts in.
func InitialStatus(kind Kind, f Fields) Status {
	if kind == KindPending {
		return StatusPending
	}
	return DeriveStatus(f.StartDate, f.FinishDate, f.Rating)
}

// Reconcile returns the status an entry should carry after an edit. Pending
// entries stay pending until the edit records a date; everything else is
// re-derived, so a non-pending entry never returns to pending.
func Reconcile(prev Status, e Entry) Status {
	if prev == StatusPending && !e.HasDates() {
		return StatusPending
	}
	return DeriveStatus(e.StartDate, e.FinishDate, e.Rating)
}

// Normalize clears fields that have no meaning for the entry's status.
func Normalize(e Entry) Entry {
	if e.Status == StatusPending {
		e.StartDate = Date{}
		e.FinishDate = Date{}
		e.Rating = Rating{}
	}
	return e
}

// Start moves a pending entry to in-progress, recording today as its start
// date. The input is never modified.
func Start(e Entry, today Date) (Entry, error) {
	if e.Status != StatusPending {
		return e, &TransitionError{Action: ActionStart, From: e.Status}
	}
	out := e.Clone()
	out.StartDate = today
	out.Status = StatusInProgress
	return out, nil
}

// Finish completes an in-progress entry. Entries with dates get today as their
// finish date, clamped so it never precedes the start date. Entries without
// dates stay dateless and fall back to the not-rated sentinel when no rating
// is given. An unset rating argument leaves any existing rating in place.
func Finish(e Entry, today Date, rating Rating) (Entry, error) {
	out := e.Clone()
	switch e.Status {
	case StatusInProgress:
		out.FinishDate = today
		if today.Before(e.StartDate) {
			out.FinishDate = e.StartDate
		}
		out.Status = StatusCompleted
	case StatusInProgressNoDates:
		out.Status = StatusCompletedNoDates
	default:
		return e, &TransitionError{Action: ActionFinish, From: e.Status}
	}
	if rating.IsSet() {
		out.Rating = rating
	}
	if out.Status == StatusCompletedNoDates && !out.Rating.IsSet() {
		out.Rating = NotRated()
	}
	return out, nil
}

// CheckInvariants reports the first status invariant e violates, or nil.
func CheckInvariants(e Entry) error {
	if _, ok := statusSet[e.Status]; !ok {
		return &ValidationError{Errors: []string{MsgInvalidStatus}}
	}
	switch e.Status {
	case StatusPending:
		if e.HasDates() {
			return &ValidationError{Errors: []string{MsgPendingHasDates}}
		}
	case StatusCompletedNoDates:
		if !e.Rating.IsSet() {
			return &ValidationError{Errors: []string{"Items marked as completed without dates must have a rating"}}
		}
	case StatusInProgressNoDates:
		if _, ok := e.Rating.Value(); ok {
			return &ValidationError{Errors: []string{"Items in progress without dates should not have a rating"}}
		}
	}
	return nil
}

// Repair coerces an entry read from storage into a consistent state. Entries
// with an unknown status, or one their fields contradict, get their status
// re-derived from dates and rating.
func Repair(e Entry) Entry {
	if e.Status == StatusPending && !e.HasDates() {
		return Normalize(e)
	}
	if CheckInvariants(e) == nil {
		return e
	}
	e.Status = DeriveStatus(e.StartDate, e.FinishDate, e.Rating)
	return e
}
