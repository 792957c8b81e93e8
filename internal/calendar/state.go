package calendar

// State is a stage of a batch insert.
//
//	Pending -> Inserting -> Succeeded | PartiallySucceeded | Failed
//	Inserting -> RefreshingToken -> Inserting (at most once)
type State string

const (
	StatePending            State = "pending"
	StateInserting          State = "inserting"
	StateRefreshingToken    State = "refreshing_token"
	StateSucceeded          State = "succeeded"
	StatePartiallySucceeded State = "partially_succeeded"
	StateFailed             State = "failed"
)

// Terminal reports whether no further transitions follow s.
func (s State) Terminal() bool {
	switch s {
	case StateSucceeded, StatePartiallySucceeded, StateFailed:
		return true
	}
	return false
}
