package models

import "testing"

func TestSubjectProgress(t *testing.T) {
	cases := []struct {
		name             string
		completed, total int
		want             int
	}{
		{"zero of ten", 0, 10, 0},
		{"four of ten", 4, 10, 40},
		{"one of three rounds up", 1, 3, 33},
		{"two of three rounds up", 2, 3, 67},
		{"all done", 10, 10, 100},
		{"zero total", 3, 0, 0},
		{"negative total", 3, -1, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SubjectProgress(tc.completed, tc.total); got != tc.want {
				t.Errorf("SubjectProgress(%d, %d) = %d, want %d", tc.completed, tc.total, got, tc.want)
			}
		})
	}
}

func TestGoalProgress(t *testing.T) {
	steps := func(done ...bool) []GoalStep {
		out := make([]GoalStep, len(done))
		for i, d := range done {
			out[i] = GoalStep{Completed: d}
		}
		return out
	}

	cases := []struct {
		name  string
		steps []GoalStep
		want  int
	}{
		{"no steps", nil, 0},
		{"none done", steps(false, false, false), 0},
		{"one of three", steps(true, false, false), 33},
		{"two of three", steps(true, true, false), 67},
		{"all done", steps(true, true), 100},
		{"half", steps(true, false), 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := GoalProgress(tc.steps); got != tc.want {
				t.Errorf("GoalProgress = %d, want %d", got, tc.want)
			}
		})
	}
}
