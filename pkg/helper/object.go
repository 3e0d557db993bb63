package helper

import (
	"fmt"

	"github.com/flowgate/flowgate/internal/model"
)

// ObjectMerge implements object.merge: target and source must both
// exist, share the same kind, and be either object or array. Objects
// merge by key union with the source winning on conflict; arrays
// concatenate.
func ObjectMerge(targetField, name string, raw []string) (Operator, error) {
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
	failureNoSource := fmt.Sprintf("[%s] -> Failure: [%s] not found", tn, sourceField)
	failureNoTarget := fmt.Sprintf("[%s] -> Failure: [%s] not found", tn, targetField)
	failureTypeMismatch := fmt.Sprintf("[%s] -> Failure: fields type error", tn)

	return func(event *model.Document) Result {
		srcValue, ok := event.Get(sourceField)
		if !ok {
			return failure(event, failureNoSource)
		}
		if !event.Exists(targetField) {
			return failure(event, failureNoTarget)
		}
		targetKind, _ := event.Type(targetField)
		srcKind, _ := event.Type(sourceField)
		if targetKind != srcKind || (targetKind != model.KindObject && targetKind != model.KindArray) {
			return failure(event, failureTypeMismatch)
		}
		if err := event.Merge(targetField, srcValue); err != nil {
			return failure(event, failureTypeMismatch)
		}
		return success(event, successTrace)
	}, nil
}
