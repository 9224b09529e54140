package common

type Checker interface {
	GetFuncs() []CheckerFunc
}

type CheckerDeferFunc func(int, Checker, error)

var DefaultDeferFunc CheckerDeferFunc = func(int, Checker, error) {}

type CheckerFunc func(Checker, ...interface{}) error

type DefaultChecker struct {
	Funcs []CheckerFunc
}

func (c *DefaultChecker) GetFuncs() []CheckerFunc {
	return c.Funcs
}

// CheckerStop ends the checker chain without being a failure; the caller
// gets it back from `RunChecker` and can tell it apart from real errors.
type CheckerStop struct {
	Message string
}

func NewCheckerStop(message string) CheckerStop {
	return CheckerStop{Message: message}
}

func (c CheckerStop) Error() string {
	return c.Message
}

func IsCheckerStop(err error) bool {
	_, ok := err.(CheckerStop)
	return ok
}

func RunChecker(checker Checker, deferFunc CheckerDeferFunc, args ...interface{}) error {
	if deferFunc == nil {
		deferFunc = DefaultDeferFunc
	}

	var err error
	for i, f := range checker.GetFuncs() {
		if err = f(checker, args...); err != nil {
			deferFunc(i, checker, err)
			return err
		}
		deferFunc(i, checker, err)
	}
	return nil
}
