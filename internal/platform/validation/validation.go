// Package validation implements structural payload validation. A payload is
// first checked against the key set a validation group expects (exact match
// for create and full replacement, subset for partial updates), then each
// supplied field is checked against its declarative Rule. The whole payload
// passes or fails as a unit; field-level detail is reported through Errors
// for logging by the caller.
package validation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Group selects the structural and requiredness rules applied to a payload.
type Group string

const (
	// Create validates a creation payload: every creatable field, nothing else.
	Create Group = "create"
	// Full validates a full replacement: every updatable field, nothing else.
	Full Group = "full"
	// Partial validates a partial update: a non-empty subset of the
	// updatable fields.
	Partial Group = "partial"
)

// ExactKeys reports whether subject and reference have exactly the same key
// set: the union of their keys is no larger than either key count.
func ExactKeys[A, B any](subject map[string]A, reference map[string]B) bool {
	union := make(map[string]struct{}, len(subject)+len(reference))
	for k := range subject {
		union[k] = struct{}{}
	}
	for k := range reference {
		union[k] = struct{}{}
	}
	return len(union) == len(subject) && len(union) == len(reference)
}

// SubsetKeys reports whether every key of subject also appears in reference.
func SubsetKeys[A, B any](subject map[string]A, reference map[string]B) bool {
	matched := 0
	for k := range subject {
		if _, ok := reference[k]; ok {
			matched++
		}
	}
	return len(subject) <= matched
}

// Kind selects the value check applied to a field.
type Kind int

const (
	// KindString is an ASCII string with length bounds.
	KindString Kind = iota
	// KindStringList is a list of ASCII strings, each with length bounds.
	KindStringList
	// KindInteger is an integral number with a minimum.
	KindInteger
	// KindEmail is an email-shaped ASCII string with length bounds.
	KindEmail
	// KindPassword is an ASCII string restricted to letters, digits and the
	// symbols @$!%*?&, containing at least one lowercase letter, one
	// uppercase letter, one digit and one symbol.
	KindPassword
	// KindRefList is a list of reference objects, each carrying a non-empty
	// string "id".
	KindRefList
)

// Rule declares the constraints of one field: its value kind, bounds and the
// validation groups in which the field may appear. Within Create and Full
// the exact key-set check makes every allowed field required; within Partial
// all allowed fields are optional.
type Rule struct {
	Kind   Kind
	MinLen int
	MaxLen int
	Min    int
	Groups []Group
}

func (r Rule) inGroup(group Group) bool {
	for _, g := range r.Groups {
		if g == group {
			return true
		}
	}
	return false
}

// FieldError reports why a single field failed validation.
type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Reason
}

// Errors aggregates the field failures of one payload.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// Schema maps field names to their rules.
type Schema map[string]Rule

// Reference returns the fields of s that may appear in the given group.
func (s Schema) Reference(group Group) map[string]Rule {
	ref := make(map[string]Rule, len(s))
	for name, rule := range s {
		if rule.inGroup(group) {
			ref[name] = rule
		}
	}
	return ref
}

// Validate checks payload against the schema under the given group. It
// returns an Errors value describing every failure, or nil.
func (s Schema) Validate(payload map[string]any, group Group) error {
	ref := s.Reference(group)

	switch group {
	case Partial:
		if len(payload) == 0 {
			return Errors{{Field: "payload", Reason: "at least one field must be supplied"}}
		}
		if !SubsetKeys(payload, ref) {
			return Errors{{Field: "payload", Reason: "unrecognized field supplied"}}
		}
	default:
		if !ExactKeys(payload, ref) {
			return Errors{{Field: "payload", Reason: "key set must match " + keyList(ref)}}
		}
	}

	var errs Errors
	for _, name := range sortedKeys(payload) {
		if fe := checkField(name, ref[name], payload[name]); fe != nil {
			errs = append(errs, *fe)
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

const passwordSymbols = "@$!%*?&"

func checkField(name string, rule Rule, value any) *FieldError {
	fail := func(reason string) *FieldError {
		return &FieldError{Field: name, Reason: reason}
	}

	switch rule.Kind {
	case KindString:
		s, ok := value.(string)
		if !ok {
			return fail("must be a string")
		}
		if reason := checkASCIIString(s, rule.MinLen, rule.MaxLen); reason != "" {
			return fail(reason)
		}

	case KindStringList:
		items, ok := stringItems(value)
		if !ok {
			return fail("must be a list of strings")
		}
		for _, item := range items {
			if reason := checkASCIIString(item, rule.MinLen, rule.MaxLen); reason != "" {
				return fail("each entry " + reason)
			}
		}

	case KindInteger:
		n, ok := integerValue(value)
		if !ok {
			return fail("must be an integer")
		}
		if n < rule.Min {
			return fail(fmt.Sprintf("must be at least %d", rule.Min))
		}

	case KindEmail:
		s, ok := value.(string)
		if !ok {
			return fail("must be a string")
		}
		if len(s) < rule.MinLen || len(s) > rule.MaxLen {
			return fail(fmt.Sprintf("length must be between %d and %d", rule.MinLen, rule.MaxLen))
		}
		if !emailPattern.MatchString(s) {
			return fail("must be an email address")
		}

	case KindPassword:
		s, ok := value.(string)
		if !ok {
			return fail("must be a string")
		}
		if reason := checkPassword(s, rule.MinLen, rule.MaxLen); reason != "" {
			return fail(reason)
		}

	case KindRefList:
		if _, ok := RefIDsOf(value); !ok {
			return fail("must be a list of objects each carrying an id")
		}
	}
	return nil
}

func checkASCIIString(s string, minLen, maxLen int) string {
	if len(s) < minLen || len(s) > maxLen {
		return fmt.Sprintf("length must be between %d and %d", minLen, maxLen)
	}
	for _, r := range s {
		if r > unicode.MaxASCII {
			return "must contain only ASCII characters"
		}
	}
	return ""
}

// checkPassword verifies length, charset and character-class coverage.
// RE2 has no lookahead, so the class requirements are scanned explicitly.
func checkPassword(s string, minLen, maxLen int) string {
	if len(s) < minLen || len(s) > maxLen {
		return fmt.Sprintf("length must be between %d and %d", minLen, maxLen)
	}
	var lower, upper, digit, symbol bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		default:
			return "contains a character outside letters, digits and " + passwordSymbols
		}
	}
	if !lower || !upper || !digit || !symbol {
		return "must contain a lowercase letter, an uppercase letter, a digit and a symbol"
	}
	return ""
}

// StringValue extracts an optional string field from a validated payload.
func StringValue(payload map[string]any, key string) *string {
	if v, ok := payload[key].(string); ok {
		return &v
	}
	return nil
}

// IntValue extracts an optional integer field from a validated payload,
// accepting the numeric representations JSON decoding may produce.
func IntValue(payload map[string]any, key string) *int {
	v, ok := payload[key]
	if !ok {
		return nil
	}
	if n, ok := integerValue(v); ok {
		return &n
	}
	return nil
}

// StringListValue extracts an optional string-list field from a validated
// payload. It returns nil when the field is absent.
func StringListValue(payload map[string]any, key string) []string {
	v, ok := payload[key]
	if !ok {
		return nil
	}
	items, ok := stringItems(v)
	if !ok {
		return nil
	}
	return items
}

// RefIDs extracts the ids of an optional reference-list field. The second
// result reports whether the field was present.
func RefIDs(payload map[string]any, key string) ([]string, bool) {
	v, ok := payload[key]
	if !ok {
		return nil, false
	}
	ids, ok := RefIDsOf(v)
	if !ok {
		return nil, false
	}
	return ids, true
}

// RefIDsOf reads a list of reference objects, returning their ids in input
// order. It accepts both decoded JSON ([]any of map[string]any) and typed
// []map[string]any values.
func RefIDsOf(value any) ([]string, bool) {
	var entries []map[string]any
	switch v := value.(type) {
	case []map[string]any:
		entries = v
	case []any:
		entries = make([]map[string]any, 0, len(v))
		for _, item := range v {
			obj, ok := item.(map[string]any)
			if !ok {
				return nil, false
			}
			entries = append(entries, obj)
		}
	default:
		return nil, false
	}

	ids := make([]string, len(entries))
	for i, entry := range entries {
		id, ok := entry["id"].(string)
		if !ok || id == "" {
			return nil, false
		}
		ids[i] = id
	}
	return ids, true
}

func integerValue(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

func stringItems(value any) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return v, true
	case []any:
		items := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			items[i] = s
		}
		return items, true
	}
	return nil, false
}

func keyList(ref map[string]Rule) string {
	return strings.Join(sortedKeys(ref), ", ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
