package helper

import (
	"fmt"
	"strconv"

	"github.com/flowgate/flowgate/internal/model"
)

// IntCalc implements int.calc: read targetField as a signed 32-bit
// int, apply op against a literal or referenced operand, write back.
// Arithmetic wraps on overflow, matching the general numeric semantics
// (overflow is wrap except where explicitly checked, e.g. time.epochNow)
// and the original's plain int arithmetic with only a division-by-zero
// guard.
func IntCalc(targetField, name string, raw []string) (Operator, error) {
	params := ParseParameters(raw)
	if err := checkArity(params, 2); err != nil {
		return nil, err
	}
	opParam, operand := params[0], params[1]
	if err := checkType(opParam, Value); err != nil {
		return nil, err
	}

	apply, err := intOpFor(opParam.Value)
	if err != nil {
		return nil, err
	}

	var literalOperand int32
	if operand.Type == Value {
		n, convErr := parseInt32(operand.Value)
		if convErr != nil {
			return nil, fmt.Errorf("could not convert %q to int: %w", operand.Value, convErr)
		}
		if opParam.Value == "div" && n == 0 {
			return nil, fmt.Errorf("division by zero in int.calc")
		}
		literalOperand = n
	}

	tn := traceName(name, targetField)
	successTrace := fmt.Sprintf("[%s] -> Success", tn)
	failureTarget := fmt.Sprintf("[%s] -> Failure: [%s] not found", tn, targetField)
	failureOperand := fmt.Sprintf("[%s] -> Failure: [%s] not found", tn, operand.Value)
	failureDivZero := fmt.Sprintf("[%s] -> Failure: [%s] division by zero", tn, operand.Value)

	return func(event *model.Document) Result {
		left, ok := event.GetInt32(targetField)
		if !ok {
			return failure(event, failureTarget)
		}

		right := literalOperand
		if operand.Type == Reference {
			v, ok := event.GetInt32(operand.Value)
			if !ok {
				return failure(event, failureOperand)
			}
			if opParam.Value == "div" && v == 0 {
				return failure(event, failureDivZero)
			}
			right = v
		}

		result := apply(left, right)
		event.SetInt32(targetField, result)
		return success(event, successTrace)
	}, nil
}

// intOpFor returns the wrap-on-overflow int32 arithmetic for op, matching
// the original's plain int arithmetic (no overflow check beyond the
// division-by-zero guard already applied before apply is called).
func intOpFor(op string) (func(l, r int32) int32, error) {
	switch op {
	case "sum":
		return func(l, r int32) int32 { return l + r }, nil
	case "sub":
		return func(l, r int32) int32 { return l - r }, nil
	case "mul":
		return func(l, r int32) int32 { return l * r }, nil
	case "div":
		return func(l, r int32) int32 { return l / r }, nil
	default:
		return nil, fmt.Errorf("unsupported int.calc operation %q", op)
	}
}

func parseInt32(s string) (int32, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	return int32(n), err
}
