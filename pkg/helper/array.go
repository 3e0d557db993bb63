package helper

import (
	"fmt"
	"strings"

	"github.com/flowgate/flowgate/internal/model"
)

// ArrayAppend implements array.append: for each argument in order, a
// REFERENCE appends the referenced JSON subtree to the target array,
// a VALUE appends as a string.
func ArrayAppend(targetField, name string, raw []string) (Operator, error) {
	params := ParseParameters(raw)
	if err := checkMinArity(params, 1); err != nil {
		return nil, fmt.Errorf("array.append parameters cannot be empty")
	}

	tn := traceName(name, targetField)
	successTrace := fmt.Sprintf("[%s] -> Success", tn)
	failureTrace := fmt.Sprintf("[%s] -> Failure: parameter reference not found", tn)

	return func(event *model.Document) Result {
		values := make([]any, 0, len(params))
		for _, p := range params {
			if p.Type == Reference {
				v, ok := event.Get(p.Value)
				if !ok {
					return failure(event, failureTrace)
				}
				values = append(values, v)
				continue
			}
			values = append(values, p.Value)
		}
		for _, v := range values {
			if err := event.Append(targetField, v); err != nil {
				return failure(event, failureTrace)
			}
		}
		return success(event, successTrace)
	}, nil
}

// ArraySplitString implements array.splitString: split a referenced
// string by a single-character separator, appending each piece to the
// target array.
func ArraySplitString(targetField, name string, raw []string) (Operator, error) {
	params := ParseParameters(raw)
	if err := checkArity(params, 2); err != nil {
		return nil, err
	}
	if err := checkType(params[0], Reference); err != nil {
		return nil, err
	}
	if err := checkType(params[1], Value); err != nil {
		return nil, err
	}
	if len(params[1].Value) != 1 {
		return nil, fmt.Errorf("array.splitString separator must be exactly one character")
	}
	sourceField := params[0].Value
	separator := params[1].Value

	tn := traceName(name, targetField)
	successTrace := fmt.Sprintf("[%s] -> Success", tn)
	failureTrace := fmt.Sprintf("[%s] -> Failure: [%s] not found or not a string", tn, sourceField)

	return func(event *model.Document) Result {
		s, ok := event.GetString(sourceField)
		if !ok {
			return failure(event, failureTrace)
		}
		for _, part := range strings.Split(s, separator) {
			if err := event.Append(targetField, part); err != nil {
				return failure(event, failureTrace)
			}
		}
		return success(event, successTrace)
	}, nil
}
