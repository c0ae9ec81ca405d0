package feed

// CompletionState summarizes one (user, objective) pair after a command has
// settled: whether the membership edge still exists, how many items are
// visited out of the objective's fixed total, and whether a
// completed_objective entry currently exists for the pair.
type CompletionState struct {
	Held              bool
	Completed         int
	Total             int
	HasCompletedEntry bool
}

// Changes is the compensating action list Reconcile produces. At most one of
// the two fields is set.
type Changes struct {
	InsertCompleted bool
	DeleteCompleted bool
}

// Reconcile derives the completed_objective entry transition from the
// post-command state. The rule is the completion invariant verbatim: an
// entry exists iff the user holds the objective and every item is visited.
// Keeping this a pure function gives bulk operations and single toggles one
// shared rule to evaluate once the batch has settled.
func Reconcile(state CompletionState) Changes {
	complete := state.Held && state.Total > 0 && state.Completed >= state.Total

	switch {
	case complete && !state.HasCompletedEntry:
		return Changes{InsertCompleted: true}
	case !complete && state.HasCompletedEntry:
		return Changes{DeleteCompleted: true}
	default:
		return Changes{}
	}
}
