package bureau

// Symbolic kind keys recognized by the factory. Case-sensitive, no aliases.
const (
	KindShrubberyCreation  = "shrubbery creation"
	KindRobotomyRequest    = "robotomy request"
	KindPresidentialPardon = "presidential pardon"
)

// Kinds returns the closed set of recognized kind keys.
func Kinds() []string {
	return []string{KindShrubberyCreation, KindRobotomyRequest, KindPresidentialPardon}
}

// Factory builds form variants from their symbolic kind keys. It carries the
// collaborators the variants need so callers never wire them per form. The
// factory does not retain the forms it produces.
type Factory struct {
	writer ArtifactWriter
	random RandomSource
}

func NewFactory(writer ArtifactWriter, random RandomSource) *Factory {
	return &Factory{writer: writer, random: random}
}

// Make returns a fresh unsigned form for the given kind key, with the
// variant's fixed thresholds. Any other key, including the empty string,
// fails ErrFormNotFound.
func (f *Factory) Make(kind, target string) (Form, error) {
	switch kind {
	case KindShrubberyCreation:
		return NewShrubberyCreation(target, f.writer), nil
	case KindRobotomyRequest:
		return NewRobotomyRequest(target, f.random), nil
	case KindPresidentialPardon:
		return NewPresidentialPardon(target), nil
	}
	return nil, ErrFormNotFound
}

// Restore rehydrates a persisted form, including its signed flag. Used by
// callers that keep form state in a store between requests.
func (f *Factory) Restore(kind, target string, signed bool) (Form, error) {
	form, err := f.Make(kind, target)
	if err != nil {
		return nil, err
	}
	form.restore(signed)
	return form, nil
}
