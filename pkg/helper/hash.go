package helper

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"

	"github.com/flowgate/flowgate/internal/model"
)

// HashSHA1 implements hash.sha1: compute the SHA-1 digest of a VALUE
// or REFERENCE and write it as lowercase hex.
func HashSHA1(targetField, name string, raw []string) (Operator, error) {
	params := ParseParameters(raw)
	if err := checkArity(params, 1); err != nil {
		return nil, err
	}
	arg := params[0]

	tn := traceName(name, targetField)
	successTrace := fmt.Sprintf("[%s] -> Success", tn)
	failureTrace := fmt.Sprintf("[%s] -> Failure: argument not found", tn)

	return func(event *model.Document) Result {
		var input string
		if arg.Type == Reference {
			s, ok := event.GetString(arg.Value)
			if !ok {
				return failure(event, failureTrace)
			}
			input = s
		} else {
			input = arg.Value
		}
		sum := sha1.Sum([]byte(input))
		event.SetString(targetField, hex.EncodeToString(sum[:]))
		return success(event, successTrace)
	}, nil
}
