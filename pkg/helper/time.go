package helper

import (
	"fmt"
	"math"
	"time"

	"github.com/flowgate/flowgate/internal/model"
)

// TimeEpochNow implements time.epochNow: write the current wall-clock
// second count, failing on overflow of signed 32-bit int.
func TimeEpochNow(targetField, name string, raw []string) (Operator, error) {
	params := ParseParameters(raw)
	if err := checkArity(params, 0); err != nil {
		return nil, err
	}

	tn := traceName(name, targetField)
	successTrace := fmt.Sprintf("[%s] -> Success", tn)
	failureTrace := fmt.Sprintf("[%s] -> Failure (overflow)", tn)

	return func(event *model.Document) Result {
		sec := time.Now().Unix()
		if sec > math.MaxInt32 {
			return failure(event, failureTrace)
		}
		event.SetInt32(targetField, int32(sec))
		return success(event, successTrace)
	}, nil
}
