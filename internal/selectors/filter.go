// Package selectors derives read-only views from slice snapshots. Every function is pure:
// inputs are never mutated and the result is a fresh slice in input order.
package selectors

import (
	"slices"
	"strings"
)

// Predicate reports whether an item belongs to a view
type Predicate[T any] func(T) bool

// Filter returns the items matching every predicate, in input order
func Filter[T any](items []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if matchAll(item, preds) {
			out = append(out, item)
		}
	}
	return out
}

func matchAll[T any](item T, preds []Predicate[T]) bool {
	for _, p := range preds {
		if p != nil && !p(item) {
			return false
		}
	}
	return true
}

// Text matches items where any field contains query, case-insensitively.
// Empty or whitespace-only query matches everything.
func Text[T any](query string, fields ...func(T) string) Predicate[T] {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	return func(item T) bool {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f(item)), q) {
				return true
			}
		}
		return false
	}
}

// Equal matches items whose field equals value exactly. Empty value matches everything.
func Equal[T any](value string, field func(T) string) Predicate[T] {
	if value == "" {
		return nil
	}
	return func(item T) bool {
		return field(item) == value
	}
}

// Distinct returns the unique non-empty values of field, sorted
func Distinct[T any](items []T, field func(T) string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		v := field(item)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
