package bureau_test

import (
	"errors"
	"testing"

	"github.com/formbureau/formdesk/internal/bureau"
)

func TestNewActorGradeBounds(t *testing.T) {
	cases := []struct {
		name    string
		grade   int
		wantErr error
	}{
		{"above ceiling", 0, bureau.ErrGradeTooHigh},
		{"far above ceiling", -42, bureau.ErrGradeTooHigh},
		{"ceiling", 1, nil},
		{"middle", 75, nil},
		{"floor", 150, nil},
		{"below floor", 151, bureau.ErrGradeTooLow},
		{"far below floor", 9000, bureau.ErrGradeTooLow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a, err := bureau.NewActor("Hermes", tc.grade)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("grade %d: want %v, got %v", tc.grade, tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("grade %d: unexpected error %v", tc.grade, err)
			}
			if a.Grade() != tc.grade {
				t.Fatalf("grade %d: constructed with %d", tc.grade, a.Grade())
			}
		})
	}
}

func TestPromoteStopsAtCeiling(t *testing.T) {
	a, err := bureau.NewActor("Alice", 1)
	if err != nil {
		t.Fatalf("new actor: %v", err)
	}
	if err := a.Promote(); !errors.Is(err, bureau.ErrGradeTooHigh) {
		t.Fatalf("want ErrGradeTooHigh, got %v", err)
	}
	if a.Grade() != 1 {
		t.Fatalf("failed promote mutated grade to %d", a.Grade())
	}
}

func TestDemoteStopsAtFloor(t *testing.T) {
	a, err := bureau.NewActor("Bob", 150)
	if err != nil {
		t.Fatalf("new actor: %v", err)
	}
	if err := a.Demote(); !errors.Is(err, bureau.ErrGradeTooLow) {
		t.Fatalf("want ErrGradeTooLow, got %v", err)
	}
	if a.Grade() != 150 {
		t.Fatalf("failed demote mutated grade to %d", a.Grade())
	}
}

func TestPromoteDemoteCommit(t *testing.T) {
	a, err := bureau.NewActor("Carol", 42)
	if err != nil {
		t.Fatalf("new actor: %v", err)
	}
	if err := a.Promote(); err != nil {
		t.Fatalf("promote: %v", err)
	}
	if a.Grade() != 41 {
		t.Fatalf("want grade 41 after promote, got %d", a.Grade())
	}
	if err := a.Demote(); err != nil {
		t.Fatalf("demote: %v", err)
	}
	if a.Grade() != 42 {
		t.Fatalf("want grade 42 after demote, got %d", a.Grade())
	}
}
