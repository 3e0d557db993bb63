package helper

import "fmt"

func checkArity(params []Parameter, want int) error {
	if len(params) != want {
		return fmt.Errorf("expected %d parameters, got %d", want, len(params))
	}
	return nil
}

func checkMinArity(params []Parameter, min int) error {
	if len(params) < min {
		return fmt.Errorf("expected at least %d parameters, got %d", min, len(params))
	}
	return nil
}

func checkType(p Parameter, want ParamType) error {
	if p.Type != want {
		return fmt.Errorf("parameter %q must be %s", p.Value, want)
	}
	return nil
}
