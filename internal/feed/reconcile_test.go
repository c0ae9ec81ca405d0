package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconcile(t *testing.T) {
	tests := []struct {
		name  string
		state CompletionState
		want  Changes
	}{
		{
			name:  "all visited without entry inserts",
			state: CompletionState{Held: true, Completed: 3, Total: 3},
			want:  Changes{InsertCompleted: true},
		},
		{
			name:  "all visited with entry is stable",
			state: CompletionState{Held: true, Completed: 3, Total: 3, HasCompletedEntry: true},
			want:  Changes{},
		},
		{
			name:  "partial with entry deletes",
			state: CompletionState{Held: true, Completed: 2, Total: 3, HasCompletedEntry: true},
			want:  Changes{DeleteCompleted: true},
		},
		{
			name:  "partial without entry is stable",
			state: CompletionState{Held: true, Completed: 2, Total: 3},
			want:  Changes{},
		},
		{
			name:  "membership dropped deletes even when counts match",
			state: CompletionState{Held: false, Completed: 3, Total: 3, HasCompletedEntry: true},
			want:  Changes{DeleteCompleted: true},
		},
		{
			name:  "zero items never completes",
			state: CompletionState{Held: true, Completed: 0, Total: 0},
			want:  Changes{},
		},
		{
			name:  "zero visited with entry deletes",
			state: CompletionState{Held: true, Completed: 0, Total: 3, HasCompletedEntry: true},
			want:  Changes{DeleteCompleted: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reconcile(tt.state))
		})
	}
}
