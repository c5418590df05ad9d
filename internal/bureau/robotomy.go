package bureau

import "context"

// RobotomyRequest robotomizes its target with a 50% success rate drawn from
// the injected RandomSource.
type RobotomyRequest struct {
	formCore
	random RandomSource
}

func NewRobotomyRequest(target string, random RandomSource) *RobotomyRequest {
	return &RobotomyRequest{
		formCore: newFormCore("Robotomy Request Form", KindRobotomyRequest, target, 72, 45),
		random:   random,
	}
}

// Execute reports exactly one of two outcomes. The failed coin flip is a
// domain outcome, not an error; the error return stays nil either way.
func (f *RobotomyRequest) Execute(ctx context.Context, a *Actor) (string, error) {
	if err := f.guardExecute(a); err != nil {
		return "", err
	}
	if f.random.Bool() {
		return f.target + " has been robotomized successfully", nil
	}
	return "robotomy of " + f.target + " has failed", nil
}
