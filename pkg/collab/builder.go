// Package collab provides minimal in-process stand-ins for the three
// collaborators spec.md marks out of scope: the pipeline builder, the
// environment/policy executor, and the event-source adapter. They are
// reference implementations for standalone operation, not the real
// collaborators a production deployment would supply.
package collab

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/flowgate/flowgate/internal/model"
	rerrors "github.com/flowgate/flowgate/pkg/errors"
	"github.com/flowgate/flowgate/pkg/interfaces"
)

// Rule is a single field-match condition, in the spirit of the
// teacher's FilterRule: compare a field against a literal or pattern.
type Rule struct {
	Field    string
	Operator string // "eq", "ne", "contains", "regex", "exists"
	Value    string
}

// RouteDefinition is everything a FieldRuleBuilder needs to compile a
// route's predicate: every Rule must match (logical AND) for the
// route to accept an event.
type RouteDefinition struct {
	Rules []Rule
}

// FieldRuleBuilder compiles RouteDefinitions registered by name into
// Predicate closures. It is the stand-in for the textual pipeline
// builder that spec.md marks as an external collaborator.
type FieldRuleBuilder struct {
	mu    sync.RWMutex
	defs  map[string]RouteDefinition
	regex map[string]*regexp.Regexp
}

// NewFieldRuleBuilder creates an empty builder.
func NewFieldRuleBuilder() *FieldRuleBuilder {
	return &FieldRuleBuilder{
		defs:  make(map[string]RouteDefinition),
		regex: make(map[string]*regexp.Regexp),
	}
}

// Define registers (or replaces) the definition for a route name.
// Compiles any regex rules immediately so BuildRoute never fails on a
// definition that was valid when Defined.
func (b *FieldRuleBuilder) Define(name string, def RouteDefinition) error {
	for _, rule := range def.Rules {
		if rule.Operator == "regex" {
			re, err := regexp.Compile(rule.Value)
			if err != nil {
				return rerrors.BuildError(fmt.Errorf("route %q: rule on %q: %w", name, rule.Field, err))
			}
			b.mu.Lock()
			b.regex[regexKey(name, rule.Field, rule.Value)] = re
			b.mu.Unlock()
		}
	}
	b.mu.Lock()
	b.defs[name] = def
	b.mu.Unlock()
	return nil
}

func regexKey(name, field, pattern string) string {
	return name + "\x00" + field + "\x00" + pattern
}

// BuildRoute implements interfaces.Builder. It returns an independent
// Predicate closure each call; callers needing per-worker isolation
// (the router calls this numThreads times per addRoute) get it for
// free since no mutable state is shared between returned closures.
func (b *FieldRuleBuilder) BuildRoute(name string) (interfaces.Predicate, error) {
	b.mu.RLock()
	def, ok := b.defs[name]
	b.mu.RUnlock()
	if !ok {
		return nil, rerrors.BuildError(fmt.Errorf("no route definition registered for %q", name))
	}

	rules := make([]Rule, len(def.Rules))
	copy(rules, def.Rules)
	compiled := make([]*regexp.Regexp, len(rules))
	for i, rule := range rules {
		if rule.Operator == "regex" {
			b.mu.RLock()
			compiled[i] = b.regex[regexKey(name, rule.Field, rule.Value)]
			b.mu.RUnlock()
		}
	}

	return func(event *model.Document) bool {
		for i, rule := range rules {
			if !matchRule(event, rule, compiled[i]) {
				return false
			}
		}
		return true
	}, nil
}

func matchRule(event *model.Document, rule Rule, re *regexp.Regexp) bool {
	switch rule.Operator {
	case "exists":
		return event.Exists(rule.Field)
	}

	v, ok := event.GetString(rule.Field)
	if !ok {
		return false
	}
	switch rule.Operator {
	case "eq":
		return v == rule.Value
	case "ne":
		return v != rule.Value
	case "contains":
		return strings.Contains(v, rule.Value)
	case "regex":
		return re != nil && re.MatchString(v)
	default:
		return false
	}
}
