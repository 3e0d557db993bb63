package helper

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/flowgate/flowgate/internal/model"
)

// StringUpper implements string.upper: case-transform a VALUE or
// REFERENCE to uppercase and write to targetField.
func StringUpper(targetField, name string, raw []string) (Operator, error) {
	return stringCase(targetField, name, raw, strings.ToUpper)
}

// StringLower implements string.lower.
func StringLower(targetField, name string, raw []string) (Operator, error) {
	return stringCase(targetField, name, raw, strings.ToLower)
}

func stringCase(targetField, name string, raw []string, transform func(string) string) (Operator, error) {
	params := ParseParameters(raw)
	if err := checkArity(params, 1); err != nil {
		return nil, err
	}
	arg := params[0]
	tn := traceName(name, targetField)
	successTrace := fmt.Sprintf("[%s] -> Success", tn)
	failureTrace := fmt.Sprintf("[%s] -> Failure: [%s] not found", tn, arg.Value)

	return func(event *model.Document) Result {
		var resolved string
		if arg.Type == Reference {
			v, ok := event.GetString(arg.Value)
			if !ok {
				return failure(event, failureTrace)
			}
			resolved = v
		} else {
			resolved = arg.Value
		}
		event.SetString(targetField, transform(resolved))
		return success(event, successTrace)
	}, nil
}

// StringTrim implements string.trim: mode in {begin,end,both}, char
// of length 1. Construction fails on an unknown mode or a char whose
// length is not exactly 1.
func StringTrim(targetField, name string, raw []string) (Operator, error) {
	params := ParseParameters(raw)
	if err := checkArity(params, 2); err != nil {
		return nil, err
	}
	if err := checkType(params[0], Value); err != nil {
		return nil, err
	}
	if err := checkType(params[1], Value); err != nil {
		return nil, err
	}

	var mode byte
	switch params[0].Value {
	case "begin":
		mode = 's'
	case "end":
		mode = 'e'
	case "both":
		mode = 'b'
	default:
		return nil, fmt.Errorf("invalid trim mode %q for string.trim", params[0].Value)
	}
	trimChar := params[1].Value
	if len(trimChar) != 1 {
		return nil, fmt.Errorf("invalid trim char %q for string.trim: must be length 1", trimChar)
	}

	tn := traceName(name, targetField)
	successTrace := fmt.Sprintf("[%s] -> Success", tn)
	failureTrace := fmt.Sprintf("[%s] -> Failure: [%s] not found", tn, targetField)

	return func(event *model.Document) Result {
		s, ok := event.GetString(targetField)
		if !ok {
			return failure(event, failureTrace)
		}
		switch mode {
		case 's':
			s = strings.TrimLeft(s, trimChar)
		case 'e':
			s = strings.TrimRight(s, trimChar)
		case 'b':
			s = strings.Trim(s, trimChar)
		}
		event.SetString(targetField, s)
		return success(event, successTrace)
	}, nil
}

// StringConcat implements string.concat: concatenate every argument
// in order, literals verbatim and references stringified.
func StringConcat(targetField, name string, raw []string) (Operator, error) {
	params := ParseParameters(raw)
	if err := checkMinArity(params, 2); err != nil {
		return nil, err
	}

	tn := traceName(name, targetField)
	successTrace := fmt.Sprintf("[%s] -> Success", tn)
	failNotFoundPrefix := fmt.Sprintf("[%s] -> Failure: not found parameter: ", tn)
	failUnsupportedPrefix := fmt.Sprintf("[%s] -> Failure: parameter must be string or int: ", tn)

	return func(event *model.Document) Result {
		var b strings.Builder
		for _, p := range params {
			if p.Type == Value {
				b.WriteString(p.Value)
				continue
			}
			v, ok := event.Get(p.Value)
			if !ok {
				return failure(event, failNotFoundPrefix+p.Value)
			}
			s, ok := model.Stringify(v)
			if !ok {
				return failure(event, failUnsupportedPrefix+p.Value)
			}
			b.WriteString(s)
		}
		event.SetString(targetField, b.String())
		return success(event, successTrace)
	}, nil
}

// StringFromArray implements string.fromArray: join string elements
// of a referenced array with a literal separator.
func StringFromArray(targetField, name string, raw []string) (Operator, error) {
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
	arrayRef := params[0].Value
	separator := params[1].Value

	tn := traceName(name, targetField)
	successTrace := fmt.Sprintf("[%s] -> Success", tn)
	failureNotArray := fmt.Sprintf("[%s] -> Failure: [%s] is not an array or does not exist", tn, arrayRef)
	failureNotString := fmt.Sprintf("[%s] -> Failure: array member is not a string", tn)

	return func(event *model.Document) Result {
		arr, ok := event.GetArray(arrayRef)
		if !ok {
			return failure(event, failureNotArray)
		}
		parts := make([]string, len(arr))
		for i, v := range arr {
			s, ok := v.(string)
			if !ok {
				return failure(event, failureNotString)
			}
			parts[i] = s
		}
		event.SetString(targetField, strings.Join(parts, separator))
		return success(event, successTrace)
	}, nil
}

// StringFromHex implements string.fromHex: decode a hex-pair string
// into bytes, writing the result back as a string.
func StringFromHex(targetField, name string, raw []string) (Operator, error) {
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
	failureOddLength := fmt.Sprintf("[%s] -> Failure: hex string has an odd number of digits", tn)

	return func(event *model.Document) Result {
		hexStr, ok := event.GetString(sourceField)
		if !ok {
			return failure(event, failureNotFound)
		}
		if len(hexStr)%2 != 0 {
			return failure(event, failureOddLength)
		}
		out := make([]byte, len(hexStr)/2)
		for i := 0; i < len(out); i++ {
			b, err := hexByte(hexStr[i*2], hexStr[i*2+1])
			if err != nil {
				return failure(event, fmt.Sprintf("[%s] -> Failure: %s", tn, err.Error()))
			}
			out[i] = b
		}
		event.SetString(targetField, string(out))
		return success(event, successTrace)
	}, nil
}

func hexByte(hi, lo byte) (byte, error) {
	h, err := hexDigit(hi)
	if err != nil {
		return 0, err
	}
	l, err := hexDigit(lo)
	if err != nil {
		return 0, err
	}
	return h<<4 | l, nil
}

func hexDigit(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	default:
		return 0, fmt.Errorf("character %q is not a valid hex digit", c)
	}
}

// StringHexToNumber implements string.hexToNumber: parse a hex
// reference into a signed integer.
func StringHexToNumber(targetField, name string, raw []string) (Operator, error) {
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
	failureBadHex := fmt.Sprintf("[%s] -> Failure: bad hexadecimal string", tn)

	return func(event *model.Document) Result {
		hexStr, ok := event.GetString(sourceField)
		if !ok {
			return failure(event, failureNotFound)
		}
		n, err := strconv.ParseInt(hexStr, 16, 64)
		if err != nil {
			return failure(event, failureBadHex)
		}
		event.SetInt32(targetField, int32(n))
		return success(event, successTrace)
	}, nil
}

// StringReplace implements string.replace: in-place replace-all on
// targetField. Construction fails if the old literal is empty.
// Runtime fails if target is missing/empty, or either REF is
// missing/empty. The scan advances past each replacement so a new
// substring containing old never causes an infinite loop.
func StringReplace(targetField, name string, raw []string) (Operator, error) {
	params := ParseParameters(raw)
	if err := checkArity(params, 2); err != nil {
		return nil, err
	}
	oldParam, newParam := params[0], params[1]
	if oldParam.Type == Value && oldParam.Value == "" {
		return nil, fmt.Errorf("first parameter of string.replace cannot be empty")
	}

	tn := traceName(name, targetField)
	successTrace := fmt.Sprintf("[%s] -> Success", tn)
	failureNotFound := fmt.Sprintf("[%s] -> Failure: [%s] not found", tn, targetField)
	failureEmpty := fmt.Sprintf("[%s] -> Failure: [%s] is empty", tn, targetField)

	resolve := func(event *model.Document, p Parameter) (string, *Result) {
		if p.Type == Value {
			return p.Value, nil
		}
		s, ok := event.GetString(p.Value)
		if !ok {
			r := failure(event, failureNotFound)
			return "", &r
		}
		if s == "" {
			r := failure(event, failureEmpty)
			return "", &r
		}
		return s, nil
	}

	return func(event *model.Document) Result {
		target, ok := event.GetString(targetField)
		if !ok {
			return failure(event, failureNotFound)
		}
		if target == "" {
			return failure(event, failureEmpty)
		}

		oldSub, failRes := resolve(event, oldParam)
		if failRes != nil {
			return *failRes
		}
		newSub, failRes := resolve(event, newParam)
		if failRes != nil {
			return *failRes
		}

		var b strings.Builder
		pos := 0
		for {
			idx := strings.Index(target[pos:], oldSub)
			if idx < 0 {
				b.WriteString(target[pos:])
				break
			}
			b.WriteString(target[pos : pos+idx])
			b.WriteString(newSub)
			pos += idx + len(oldSub)
		}
		event.SetString(targetField, b.String())
		return success(event, successTrace)
	}, nil
}
