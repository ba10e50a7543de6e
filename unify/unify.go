// Package unify implements structural unification over the query-language
// value universe, including list/glob pattern matching against ground
// List literals.
package unify

import (
	"errors"

	"github.com/arcadia-db/logicdb"
)

// Failure is returned by Unify and carries the partially-accumulated
// environment at the point of failure, rather than the pre-call
// environment. Glob Middle matching uses this to pick the "best
// partial" candidate when no position fully matches; callers that want
// strict pass/fail semantics can ignore the payload and treat any
// non-nil error as failure.
type Failure struct {
	Partial logicdb.Bindings
}

func (f *Failure) Error() string { return "unify: no match" }

// PartialBindings extracts the partial environment from err if it wraps
// a *Failure, or returns env unchanged otherwise.
func PartialBindings(err error, env logicdb.Bindings) logicdb.Bindings {
	var f *Failure
	if errors.As(err, &f) {
		return f.Partial
	}
	return env
}

// Unify walks left and right in lockstep up to the shorter length —
// excess elements on either side are ignored, a deliberate laxness
// preserved from the original design. It returns the extended
// environment on success, or a *Failure wrapping the partial
// environment accumulated before the failing pair.
func Unify(left, right []logicdb.Value, env logicdb.Bindings) (logicdb.Bindings, error) {
	n := len(left)
	if len(right) < n {
		n = len(right)
	}

	current := env
	for i := 0; i < n; i++ {
		next, err := unifyPair(left[i], right[i], current)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}

func unifyPair(l, r logicdb.Value, env logicdb.Bindings) (logicdb.Bindings, error) {
	switch {
	case l.Kind == logicdb.ValueLiteral && r.Kind == logicdb.ValueLiteral:
		if logicdb.EqualDBValues(l.Literal, r.Literal) {
			return env, nil
		}
		return nil, &Failure{Partial: env}

	case l.Kind == logicdb.ValueVariable && r.Kind == logicdb.ValueLiteral:
		return unifyVariableLiteral(l.VariableName, r, env)

	case l.Kind == logicdb.ValueLiteral && r.Kind == logicdb.ValueVariable:
		return unifyVariableLiteral(r.VariableName, l, env)

	case l.Kind == logicdb.ValueVariable && r.Kind == logicdb.ValueVariable:
		return env.Extend(l.VariableName, r), nil

	case l.Kind == logicdb.ValueLiteral && l.Literal.Kind == logicdb.KindList && r.Kind == logicdb.ValuePatternMatch:
		return unifyPatternMatch(l.Literal.List, r, env)

	case r.Kind == logicdb.ValueLiteral && r.Literal.Kind == logicdb.KindList && l.Kind == logicdb.ValuePatternMatch:
		return unifyPatternMatch(r.Literal.List, l, env)

	default:
		return nil, &Failure{Partial: env}
	}
}

// unifyVariableLiteral unifies a variable against a literal: if the
// variable is already bound, the bound value is recursively unified
// against the literal; otherwise the variable is bound directly. No
// occurs-check is performed, per §9.
func unifyVariableLiteral(name string, lit logicdb.Value, env logicdb.Bindings) (logicdb.Bindings, error) {
	if bound, ok := env[name]; ok {
		return unifyPair(bound, lit, env)
	}
	return env.Extend(name, lit), nil
}

// unifyPatternMatch dispatches a list pattern against a ground list.
func unifyPatternMatch(list []logicdb.DBValue, pattern logicdb.Value, env logicdb.Bindings) (logicdb.Bindings, error) {
	explicit := pattern.ExplicitValues
	asLiterals := func(vs []logicdb.DBValue) []logicdb.Value {
		out := make([]logicdb.Value, len(vs))
		for i, v := range vs {
			out[i] = logicdb.Lit(v)
		}
		return out
	}

	if !pattern.IsGlob {
		return Unify(explicit, asLiterals(list), env)
	}

	n := len(explicit)
	switch pattern.GlobPosition {
	case logicdb.GlobHead:
		end := n
		if end > len(list) {
			end = len(list)
		}
		return Unify(explicit, asLiterals(list[:end]), env)

	case logicdb.GlobTail:
		// The tail glob reverses the tail slice before unifying, which
		// almost certainly mismatches the pattern's own orientation.
		// Preserved as specified; flagged for the maintainer.
		start := len(list) - n
		if start < 0 {
			start = 0
		}
		tail := list[start:]
		reversed := make([]logicdb.DBValue, len(tail))
		for i, v := range tail {
			reversed[len(tail)-1-i] = v
		}
		return Unify(explicit, asLiterals(reversed), env)

	case logicdb.GlobMiddle:
		return unifyMiddle(list, explicit, env)

	default:
		return nil, &Failure{Partial: env}
	}
}

// unifyLenient unifies left against right pair by pair like Unify, but
// never stops at the first failing pair: it keeps binding whatever later
// variable pairs it still can, so the returned partial reflects more
// than just the prefix before the first mismatch. Used only by
// unifyMiddle, where the partial environment itself is the useful
// result when no window fully matches.
func unifyLenient(left, right []logicdb.Value, env logicdb.Bindings) (logicdb.Bindings, bool) {
	n := len(left)
	if len(right) < n {
		n = len(right)
	}

	current := env
	ok := true
	for i := 0; i < n; i++ {
		next, err := unifyPair(left[i], right[i], current)
		if err != nil {
			ok = false
			continue
		}
		current = next
	}
	return current, ok
}

// unifyMiddle tries every contiguous window of length n in list; a
// successful attempt wins over any failure, and among failures the one
// with the largest partial environment is retained — the last tried
// wins ties among successes. This makes Middle a best-effort diagnostic
// when no position matches.
func unifyMiddle(list []logicdb.DBValue, explicit []logicdb.Value, env logicdb.Bindings) (logicdb.Bindings, error) {
	n := len(explicit)
	var (
		bestOK      logicdb.Bindings
		haveOK      bool
		bestFailErr error
	)

	for i := 0; i < len(list); i++ {
		var result logicdb.Bindings
		var err error
		if i+n > len(list) {
			// Out-of-range window: fails without extending the
			// environment any further than it already was.
			err = &Failure{Partial: env}
		} else {
			window := make([]logicdb.Value, n)
			for j := 0; j < n; j++ {
				window[j] = logicdb.Lit(list[i+j])
			}
			partial, ok := unifyLenient(explicit, window, env)
			if ok {
				result = partial
			} else {
				err = &Failure{Partial: partial}
			}
		}

		if err == nil {
			bestOK = result
			haveOK = true
			continue
		}
		if haveOK {
			continue
		}
		if bestFailErr == nil {
			bestFailErr = err
			continue
		}
		if len(PartialBindings(err, env)) > len(PartialBindings(bestFailErr, env)) {
			bestFailErr = err
		}
	}

	if haveOK {
		return bestOK, nil
	}
	if bestFailErr != nil {
		return nil, bestFailErr
	}
	// Empty list: no window attempted at all.
	return nil, &Failure{Partial: env}
}
