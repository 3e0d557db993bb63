// Package model defines the Event document and its pointer-path accessors.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind enumerates the JSON types a Document node can hold.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "null"
	}
}

// Document is a tree-structured, mutable event document addressed by
// pointer paths. It is handed by ownership from the intake queue to a
// single worker and is never aliased across goroutines.
//
// Numbers decoded from raw JSON are kept as json.Number so integer and
// floating-point leaves stay distinguishable, matching the data model's
// separate "integer" and "double" leaf types; encoding/json alone
// collapses both into float64.
type Document struct {
	root any
}

// New creates an empty Document rooted at an object.
func New() *Document {
	return &Document{root: map[string]any{}}
}

// Parse decodes raw JSON bytes into a Document.
func Parse(raw []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("model: parse event: %w", err)
	}
	return &Document{root: v}, nil
}

// ParseInto decodes raw JSON bytes into dst, replacing its prior root.
// Used by pooled callers that reuse a *Document across many events
// instead of allocating a new one per parse.
func ParseInto(dst *Document, raw []byte) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("model: parse event: %w", err)
	}
	dst.root = v
	return nil
}

// Reset clears the Document back to an empty object, for reuse from a
// pool.
func (d *Document) Reset() {
	d.root = map[string]any{}
}

// Bytes serializes the Document back to JSON.
func (d *Document) Bytes() ([]byte, error) {
	return json.Marshal(d.root)
}

// Clone returns a deep copy of the Document, without re-parsing JSON.
func (d *Document) Clone() *Document {
	return &Document{root: deepCopy(d.root)}
}

// Equal reports whether two Documents serialize identically.
func (d *Document) Equal(other *Document) bool {
	a, errA := d.Bytes()
	b, errB := other.Bytes()
	if errA != nil || errB != nil {
		return false
	}
	return string(a) == string(b)
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = deepCopy(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = deepCopy(val)
		}
		return out
	default:
		return t
	}
}

// splitPath turns a pointer path into segments. A leading "/" is
// optional and stripped.
func splitPath(path string) []string {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// kindOf reports the Kind of an arbitrary decoded JSON value.
func kindOf(v any) Kind {
	switch t := v.(type) {
	case nil:
		return KindNull
	case string:
		return KindString
	case bool:
		return KindBool
	case map[string]any:
		return KindObject
	case []any:
		return KindArray
	case json.Number:
		if strings.ContainsAny(string(t), ".eE") {
			return KindFloat
		}
		return KindInt
	case float64:
		return KindFloat
	case int, int32, int64:
		return KindInt
	default:
		return KindNull
	}
}

// Get resolves a pointer path, returning the value and whether it
// exists. It never fails; a missing path simply reports false.
func (d *Document) Get(path string) (any, bool) {
	segs := splitPath(path)
	if len(segs) == 0 {
		return d.root, true
	}
	return getAt(d.root, segs)
}

func getAt(node any, segments []string) (any, bool) {
	if len(segments) == 0 {
		return node, true
	}
	seg := segments[0]
	switch n := node.(type) {
	case map[string]any:
		child, exists := n[seg]
		if !exists {
			return nil, false
		}
		return getAt(child, segments[1:])
	case []any:
		idx, err := strconv.Atoi(seg)
		if err != nil || idx < 0 || idx >= len(n) {
			return nil, false
		}
		return getAt(n[idx], segments[1:])
	default:
		return nil, false
	}
}

// Exists reports whether path resolves to a value (including JSON null).
func (d *Document) Exists(path string) bool {
	_, ok := d.Get(path)
	return ok
}

// Type returns the Kind at path, or (KindNull, false) if absent.
func (d *Document) Type(path string) (Kind, bool) {
	v, ok := d.Get(path)
	if !ok {
		return KindNull, false
	}
	return kindOf(v), true
}

// Set writes value at path, creating intermediate objects/arrays as
// needed. A type-mismatched existing value is overwritten.
func (d *Document) Set(path string, value any) error {
	segs := splitPath(path)
	if len(segs) == 0 {
		d.root = value
		return nil
	}
	newRoot, ok := setAt(d.root, segs, value)
	if !ok {
		return fmt.Errorf("model: set: invalid path %q", path)
	}
	d.root = newRoot
	return nil
}

func isArrayIndex(seg string) bool {
	if seg == "" {
		return false
	}
	for _, r := range seg {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func setAt(node any, segments []string, value any) (any, bool) {
	if len(segments) == 0 {
		return value, true
	}
	seg := segments[0]
	rest := segments[1:]

	switch n := node.(type) {
	case map[string]any:
		newChild, ok := setAt(n[seg], rest, value)
		if !ok {
			return node, false
		}
		n[seg] = newChild
		return n, true
	case []any:
		idx, err := strconv.Atoi(seg)
		if err != nil || idx < 0 {
			return node, false
		}
		if idx >= len(n) {
			grown := make([]any, idx+1)
			copy(grown, n)
			n = grown
		}
		newChild, ok := setAt(n[idx], rest, value)
		if !ok {
			return node, false
		}
		n[idx] = newChild
		return n, true
	default:
		// Absent or type-mismatched: create the container this segment
		// implies and recurse into it fresh. This is both how missing
		// intermediates are created and how a type-mismatched Set
		// overwrites the old value.
		if isArrayIndex(seg) {
			return setAt([]any{}, segments, value)
		}
		return setAt(map[string]any{}, segments, value)
	}
}

// Erase removes the value at path. Reports false if the path does not
// resolve to an existing value.
func (d *Document) Erase(path string) bool {
	segs := splitPath(path)
	if len(segs) == 0 {
		return false
	}
	newRoot, ok := eraseAt(d.root, segs)
	if !ok {
		return false
	}
	d.root = newRoot
	return true
}

func eraseAt(node any, segments []string) (any, bool) {
	seg := segments[0]
	if len(segments) == 1 {
		switch n := node.(type) {
		case map[string]any:
			if _, exists := n[seg]; !exists {
				return node, false
			}
			delete(n, seg)
			return n, true
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(n) {
				return node, false
			}
			return append(n[:idx:idx], n[idx+1:]...), true
		default:
			return node, false
		}
	}

	switch n := node.(type) {
	case map[string]any:
		child, exists := n[seg]
		if !exists {
			return node, false
		}
		newChild, ok := eraseAt(child, segments[1:])
		if !ok {
			return node, false
		}
		n[seg] = newChild
		return n, true
	case []any:
		idx, err := strconv.Atoi(seg)
		if err != nil || idx < 0 || idx >= len(n) {
			return node, false
		}
		newChild, ok := eraseAt(n[idx], segments[1:])
		if !ok {
			return node, false
		}
		n[idx] = newChild
		return n, true
	default:
		return node, false
	}
}

// Append appends value to the array at path, creating an empty array
// first if path is absent. Fails if path exists and is not an array.
func (d *Document) Append(path string, value any) error {
	cur, ok := d.Get(path)
	if !ok {
		return d.Set(path, []any{value})
	}
	arr, isArr := cur.([]any)
	if !isArr {
		return fmt.Errorf("model: append: %q is not an array", path)
	}
	arr = append(arr, value)
	return d.Set(path, arr)
}

// Merge merges src into the existing value at path. Both must exist
// (the target by virtue of already being read by the caller) and have
// the same container kind; objects union keys (src wins on conflict),
// arrays concatenate.
func (d *Document) Merge(path string, src any) error {
	cur, ok := d.Get(path)
	if !ok {
		return fmt.Errorf("model: merge: %q not found", path)
	}
	switch t := cur.(type) {
	case map[string]any:
		s, ok := src.(map[string]any)
		if !ok {
			return fmt.Errorf("model: merge: type mismatch at %q", path)
		}
		merged := make(map[string]any, len(t)+len(s))
		for k, v := range t {
			merged[k] = v
		}
		for k, v := range s {
			merged[k] = v
		}
		return d.Set(path, merged)
	case []any:
		s, ok := src.([]any)
		if !ok {
			return fmt.Errorf("model: merge: type mismatch at %q", path)
		}
		out := make([]any, 0, len(t)+len(s))
		out = append(out, t...)
		out = append(out, s...)
		return d.Set(path, out)
	default:
		return fmt.Errorf("model: merge: %q is not object or array", path)
	}
}

// Keys returns the sorted object keys at path, or false if path is not
// an object.
func (d *Document) Keys(path string) ([]string, bool) {
	v, ok := d.Get(path)
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, true
}
