package helper

import (
	"fmt"
	"regexp"

	"github.com/flowgate/flowgate/internal/model"
)

// RegexExtract implements regex.extract: compile pattern at
// construction (failing there on invalid regex); at runtime, on the
// first partial match against src, write the captured substring to
// targetField.
func RegexExtract(targetField, name string, raw []string) (Operator, error) {
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
	srcField := params[0].Value

	re, err := regexp.Compile(params[1].Value)
	if err != nil {
		return nil, fmt.Errorf("error compiling regex %q: %w", params[1].Value, err)
	}

	tn := traceName(name, targetField)
	successTrace := fmt.Sprintf("[%s] -> Success", tn)
	failureNotFound := fmt.Sprintf("[%s] -> Failure: [%s] not found", tn, srcField)
	failureNoMatch := fmt.Sprintf("[%s] -> Failure", tn)

	return func(event *model.Document) Result {
		src, ok := event.GetString(srcField)
		if !ok {
			return failure(event, failureNotFound)
		}
		loc := re.FindStringSubmatchIndex(src)
		if loc == nil {
			return failure(event, failureNoMatch)
		}
		var match string
		if len(loc) >= 4 && loc[2] >= 0 {
			match = src[loc[2]:loc[3]]
		} else {
			match = src[loc[0]:loc[1]]
		}
		event.SetString(targetField, match)
		return success(event, successTrace)
	}, nil
}
