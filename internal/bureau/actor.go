package bureau

import "context"

// Grade bounds. Grade 1 is the highest authority, 150 the lowest.
const (
	GradeHighest = 1
	GradeLowest  = 150
)

func checkGrade(grade int) error {
	if grade < GradeHighest {
		return ErrGradeTooHigh
	}
	if grade > GradeLowest {
		return ErrGradeTooLow
	}
	return nil
}

// Actor is a named clearance holder. Its grade stays within [1,150] at all
// times; every mutation re-validates that invariant before committing.
type Actor struct {
	name  string
	grade int
}

// NewActor fails ErrGradeTooHigh for grade < 1 and ErrGradeTooLow for
// grade > 150.
func NewActor(name string, grade int) (*Actor, error) {
	if err := checkGrade(grade); err != nil {
		return nil, err
	}
	return &Actor{name: name, grade: grade}, nil
}

func (a *Actor) Name() string { return a.name }

func (a *Actor) Grade() int { return a.grade }

// Promote raises authority by one step (numerically smaller grade). The grade
// is left untouched when the result would leave the valid range.
func (a *Actor) Promote() error {
	if err := checkGrade(a.grade - 1); err != nil {
		return err
	}
	a.grade--
	return nil
}

// Demote lowers authority by one step.
func (a *Actor) Demote() error {
	if err := checkGrade(a.grade + 1); err != nil {
		return err
	}
	a.grade++
	return nil
}

// Sign forwards to the form and propagates its error unchanged.
func (a *Actor) Sign(f Form) error {
	return f.Sign(a)
}

// Execute forwards to the form. The returned string is the action outcome,
// not a status: a robotomy that fails its coin flip still returns a nil error.
func (a *Actor) Execute(ctx context.Context, f Form) (string, error) {
	return f.Execute(ctx, a)
}
