package bureau

import (
	"context"
	"sync"
)

// ArtifactWriter persists a textual artifact under a key. Implementations
// live outside this package (S3, local files, test doubles).
type ArtifactWriter interface {
	Write(ctx context.Context, key, content string) error
}

// RandomSource supplies the boolean draw consumed by robotomy requests. It is
// injected rather than read from global state so tests can force either
// outcome; production sources are seeded once per process, never per call.
type RandomSource interface {
	Bool() bool
}

// Form is a document gated by two clearance thresholds: one to sign it and a
// (possibly different) one to execute it once signed. The variant set is
// closed; the unexported restore method keeps implementations local to this
// package so adding a variant is a compile-checked change here.
type Form interface {
	Name() string
	Kind() string
	Target() string
	Signed() bool
	SignGrade() int
	ExecGrade() int

	// Sign re-checks the signing threshold on every call, even when the
	// form is already signed. An eligible re-sign is a no-op success.
	Sign(a *Actor) error

	// Execute checks the signed flag before the clearance threshold, then
	// runs the variant action and returns its outcome message.
	Execute(ctx context.Context, a *Actor) (string, error)

	restore(signed bool)
}

// formCore holds the state and checks shared by every variant: the immutable
// thresholds and the unsigned -> signed state machine. The flag and the checks
// around it form one atomic unit under mu so concurrent signers cannot
// interleave check and mutation.
type formCore struct {
	name      string
	kind      string
	target    string
	signGrade int
	execGrade int

	mu     sync.Mutex
	signed bool
}

func newFormCore(name, kind, target string, signGrade, execGrade int) formCore {
	return formCore{
		name:      name,
		kind:      kind,
		target:    target,
		signGrade: signGrade,
		execGrade: execGrade,
	}
}

func (f *formCore) Name() string   { return f.name }
func (f *formCore) Kind() string   { return f.kind }
func (f *formCore) Target() string { return f.target }
func (f *formCore) SignGrade() int { return f.signGrade }
func (f *formCore) ExecGrade() int { return f.execGrade }

func (f *formCore) Signed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.signed
}

// Sign fails ErrGradeTooLow when the actor's grade is numerically greater
// than the signing threshold. The already-signed state does not exempt a
// later caller from that check; it only makes an eligible call a no-op.
func (f *formCore) Sign(a *Actor) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a.Grade() > f.signGrade {
		return ErrGradeTooLow
	}
	f.signed = true
	return nil
}

// guardExecute runs the checks that precede any variant action: signed flag
// first, clearance second. Order matters; an unsigned form never reveals
// whether the actor would have cleared the grade check.
func (f *formCore) guardExecute(a *Actor) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.signed {
		return ErrFormNotSigned
	}
	if a.Grade() > f.execGrade {
		return ErrGradeTooLow
	}
	return nil
}

func (f *formCore) restore(signed bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signed = signed
}
