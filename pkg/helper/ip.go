package helper

import (
	"fmt"
	"net"
	"strings"

	"github.com/flowgate/flowgate/internal/model"
)

// IPVersion implements ip.version: classify a referenced string as
// "IPv4" or "IPv6".
func IPVersion(targetField, name string, raw []string) (Operator, error) {
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
	failureNotFound := fmt.Sprintf("[%s] -> Failure: [%s] not found or not a string", tn, sourceField)
	failureNotIP := fmt.Sprintf("[%s] -> Failure: not a valid IP address", tn)

	return func(event *model.Document) Result {
		s, ok := event.GetString(sourceField)
		if !ok {
			return failure(event, failureNotFound)
		}
		ip := net.ParseIP(s)
		if ip == nil {
			return failure(event, failureNotIP)
		}
		if ip.To4() != nil && !strings.Contains(s, ":") {
			event.SetString(targetField, "IPv4")
		} else {
			event.SetString(targetField, "IPv6")
		}
		return success(event, successTrace)
	}, nil
}
