package helper

import (
	"fmt"

	"github.com/flowgate/flowgate/internal/model"
)

// FieldDelete implements field.delete: erase targetField, failing if
// it was already absent.
func FieldDelete(targetField, name string, raw []string) (Operator, error) {
	params := ParseParameters(raw)
	if err := checkArity(params, 0); err != nil {
		return nil, err
	}

	tn := traceName(name, targetField)
	successTrace := fmt.Sprintf("[%s] -> Success", tn)
	failureTrace := fmt.Sprintf("[%s] -> Failure", tn)

	return func(event *model.Document) Result {
		if event.Erase(targetField) {
			return success(event, successTrace)
		}
		return failure(event, failureTrace)
	}, nil
}

// FieldRename implements field.rename: copy the value at a REFERENCE
// to targetField, then erase the reference. Reports missing-source
// and erase-failure as distinct traces.
func FieldRename(targetField, name string, raw []string) (Operator, error) {
	params := ParseParameters(raw)
	if err := checkArity(params, 1); err != nil {
		return nil, err
	}
	if err := checkType(params[0], Reference); err != nil {
		return nil, err
	}
	sourceField := params[0].Value

	tn := traceName(name, targetField)
	successTrace := fmt.Sprintf("[%s] -> Success", tn)
	failureMissing := fmt.Sprintf("[%s] -> Failure: field '%s' does not exist", tn, sourceField)
	failureErase := fmt.Sprintf("[%s] -> Failure: field '%s' could not be removed", tn, sourceField)

	return func(event *model.Document) Result {
		v, ok := event.Get(sourceField)
		if !ok {
			return failure(event, failureMissing)
		}
		if err := event.Set(targetField, v); err != nil {
			return failure(event, failureMissing)
		}
		if !event.Erase(sourceField) {
			return failure(event, failureErase)
		}
		return success(event, successTrace)
	}, nil
}
