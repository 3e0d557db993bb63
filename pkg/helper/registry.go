// Package helper provides the vocabulary of field-level transformation
// operators a compiled pipeline invokes on each event: string, int,
// regex, array, object, field, ip, time and hash helpers. Each is
// constructed once at build time from (targetField, name,
// rawParameters) and returns an Operator.
package helper

import (
	"fmt"
	"sync"
)

// Factory builds an Operator from a helper invocation's definition.
// It must do all parsing, arity, and variant validation at this call
// so construction fails fast; the returned Operator does no further
// validation of its own shape.
type Factory func(targetField, name string, rawParameters []string) (Operator, error)

// Registry holds the set of named operator factories. Mirrors the
// read/write locking shape used for the route table: readers are
// expected to dominate once a process has finished registering
// operators at startup.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under name, overwriting any prior entry.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Build looks up name and invokes its factory.
func (r *Registry) Build(name, targetField string, rawParameters []string) (Operator, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown helper operator: %s", name)
	}
	return factory(targetField, name, rawParameters)
}

// Names lists every registered operator name.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	return names
}

var defaultRegistry = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("string.upper", StringUpper)
	r.Register("string.lower", StringLower)
	r.Register("string.trim", StringTrim)
	r.Register("string.concat", StringConcat)
	r.Register("string.fromArray", StringFromArray)
	r.Register("string.fromHex", StringFromHex)
	r.Register("string.hexToNumber", StringHexToNumber)
	r.Register("string.replace", StringReplace)
	r.Register("int.calc", IntCalc)
	r.Register("regex.extract", RegexExtract)
	r.Register("array.append", ArrayAppend)
	r.Register("array.splitString", ArraySplitString)
	r.Register("object.merge", ObjectMerge)
	r.Register("field.delete", FieldDelete)
	r.Register("field.rename", FieldRename)
	r.Register("ip.version", IPVersion)
	r.Register("time.epochNow", TimeEpochNow)
	r.Register("hash.sha1", HashSHA1)
	return r
}

// Default returns the process-wide registry pre-populated with the
// full built-in operator catalog.
func Default() *Registry {
	return defaultRegistry
}

// Build builds name against the default registry.
func Build(name, targetField string, rawParameters []string) (Operator, error) {
	return defaultRegistry.Build(name, targetField, rawParameters)
}

// traceName formats the name a trace string quotes: "<name>@<target>"
// when the operator has a target field, else just "<name>".
func traceName(name, targetField string) string {
	if targetField == "" {
		return name
	}
	return fmt.Sprintf("%s@%s", name, targetField)
}
