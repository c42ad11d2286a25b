package domain

import "testing"

func TestTaskStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to TaskStatus
		want     bool
	}{
		{TaskAssigned, TaskInProgress, true},
		{TaskAssigned, TaskReadyForReview, true},
		{TaskInProgress, TaskReadyForReview, true},
		{TaskReadyForReview, TaskCompleted, true},
		{TaskReadyForReview, TaskChangesRequested, true},

		// Rework loop.
		{TaskChangesRequested, TaskInProgress, true},
		{TaskChangesRequested, TaskReadyForReview, true},

		// Completed is terminal.
		{TaskCompleted, TaskInProgress, false},
		{TaskCompleted, TaskChangesRequested, false},
		{TaskCompleted, TaskReadyForReview, false},

		// Review decisions only make sense from Ready For Review.
		{TaskAssigned, TaskCompleted, false},
		{TaskInProgress, TaskCompleted, false},
		{TaskInProgress, TaskChangesRequested, false},

		// No moving backward.
		{TaskReadyForReview, TaskAssigned, false},
		{TaskInProgress, TaskAssigned, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestTaskStatus_Submittable(t *testing.T) {
	submittable := map[TaskStatus]bool{
		TaskAssigned:         true,
		TaskInProgress:       true,
		TaskChangesRequested: true,
		TaskReadyForReview:   false,
		TaskCompleted:        false,
	}
	for status, want := range submittable {
		if got := status.Submittable(); got != want {
			t.Errorf("%s.Submittable() = %v, want %v", status, got, want)
		}
	}
}
