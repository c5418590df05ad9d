package bureau

import "context"

// PresidentialPardon pardons its target. No collaborator required.
type PresidentialPardon struct {
	formCore
}

func NewPresidentialPardon(target string) *PresidentialPardon {
	return &PresidentialPardon{
		formCore: newFormCore("Presidential Pardon Form", KindPresidentialPardon, target, 25, 5),
	}
}

func (f *PresidentialPardon) Execute(ctx context.Context, a *Actor) (string, error) {
	if err := f.guardExecute(a); err != nil {
		return "", err
	}
	return f.target + " has been pardoned by Zaphod Beeblebrox", nil
}
