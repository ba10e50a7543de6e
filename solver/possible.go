package solver

import (
	"github.com/arcadia-db/logicdb"
	"github.com/arcadia-db/logicdb/annotations"
	"github.com/arcadia-db/logicdb/storage"
	"github.com/arcadia-db/logicdb/unify"
)

// PossibleBindings returns the lazy sequence of candidate environments
// for a single constraint, dispatching by constraint kind per §4.2. The
// returned Stream is single-pass and materializes its sub-streams on
// first demand.
func PossibleBindings(c *logicdb.Constraint, db *storage.Database, env logicdb.Bindings, opts *Options) Stream {
	opts.annotate(annotations.Event{Name: annotations.ConstraintBegin, Data: map[string]interface{}{"constraint": c.Kind}})

	switch c.Kind {
	case logicdb.ConstraintRelation:
		return newRelationStream(c.RelationID, c.Tokens, db, env, opts)

	case logicdb.ConstraintComparison:
		if unify.Compare(c.Op, c.A, c.B, env) {
			return &sliceStream{items: []Outcome{{Env: env, Ok: true}}}
		}
		return emptyStream{}

	case logicdb.ConstraintUnification:
		result, err := unify.Unify(c.Left, c.Right, env)
		if err != nil {
			opts.annotate(annotations.Event{Name: annotations.UnifyFail, Data: map[string]interface{}{"reason": err.Error()}})
			return emptyStream{}
		}
		return &sliceStream{items: []Outcome{{Env: result, Ok: true}}}

	case logicdb.ConstraintNot:
		return &notStream{inner: PossibleBindings(c.Inner, db, env, opts)}

	case logicdb.ConstraintAlternatives:
		return newAlternativesStream(c.Constraints, db, env, opts)

	case logicdb.ConstraintIntersections:
		return &intersectionsStream{inner: Backtrack(c.Constraints, db, env, opts)}

	default:
		return emptyStream{}
	}
}

// notStream maps every Ok item from its inner stream to Err and every
// Err item to Ok, per §4.2: negation is an existential-over-failures
// filter, yielding the failed item's (partial) environment once per
// inner failure rather than env once for the overall absence — callers needing classic negation-as-failure
// deduplication must do so themselves (§9).
type notStream struct {
	inner   Stream
	current Outcome
}

func (n *notStream) Next() bool {
	if !n.inner.Next() {
		return false
	}
	o := n.inner.Outcome()
	n.current = Outcome{Env: o.Env, Ok: !o.Ok}
	return true
}

func (n *notStream) Outcome() Outcome { return n.current }
func (n *notStream) Close() error     { return n.inner.Close() }

// alternativesStream concatenates the sub-streams of each constraint in
// order: all of the first constraint's items, then all of the second's,
// and so on.
type alternativesStream struct {
	db          *storage.Database
	env         logicdb.Bindings
	opts        *Options
	constraints []logicdb.Constraint
	idx         int
	current     Stream
	outcome     Outcome
}

func newAlternativesStream(cs []logicdb.Constraint, db *storage.Database, env logicdb.Bindings, opts *Options) *alternativesStream {
	return &alternativesStream{db: db, env: env, opts: opts, constraints: cs}
}

func (a *alternativesStream) Next() bool {
	for {
		if a.current != nil {
			if a.current.Next() {
				a.outcome = a.current.Outcome()
				return true
			}
			a.current.Close()
			a.current = nil
		}
		if a.idx >= len(a.constraints) {
			return false
		}
		a.current = PossibleBindings(&a.constraints[a.idx], a.db, a.env, a.opts)
		a.idx++
	}
}

func (a *alternativesStream) Outcome() Outcome { return a.outcome }

func (a *alternativesStream) Close() error {
	if a.current != nil {
		return a.current.Close()
	}
	return nil
}

// intersectionsStream drives a fresh backtracker over the sub-list with
// env as seed, lifting every produced binding as Ok; inner Errs are
// already dropped by Backtrack itself.
type intersectionsStream struct {
	inner   BindingStream
	current Outcome
}

func (i *intersectionsStream) Next() bool {
	if !i.inner.Next() {
		return false
	}
	i.current = Outcome{Env: i.inner.Bindings(), Ok: true}
	return true
}

func (i *intersectionsStream) Outcome() Outcome { return i.current }
func (i *intersectionsStream) Close() error     { return i.inner.Close() }

// relationStream enumerates fact-derived candidates first, then
// rule-derived candidates, per §4.2's dispatch table and §9's
// instruction to wire in rule expansion. The rule-derived stream is
// opened only once the facts are exhausted.
type relationStream struct {
	facts     *factStream
	rules     Stream
	openRules func() Stream
	current   Outcome
}

func newRelationStream(id string, tokens []logicdb.Value, db *storage.Database, env logicdb.Bindings, opts *Options) *relationStream {
	return &relationStream{
		facts: &factStream{tokens: tokens, facts: db.Facts(id), env: env, opts: opts},
		openRules: func() Stream {
			if rule, ok := db.Rule(id); ok {
				return newRuleStream(tokens, rule, db, env, opts)
			}
			return emptyStream{}
		},
	}
}

func (r *relationStream) Next() bool {
	if r.facts.Next() {
		r.current = r.facts.Outcome()
		return true
	}
	if r.rules == nil {
		r.rules = r.openRules()
	}
	if r.rules.Next() {
		r.current = r.rules.Outcome()
		return true
	}
	return false
}

func (r *relationStream) Outcome() Outcome { return r.current }

func (r *relationStream) Close() error {
	r.facts.Close()
	if r.rules == nil {
		return nil
	}
	return r.rules.Close()
}

// factStream walks a relation's stored fact tuples in insertion order,
// attempting unification against each; both Ok and Err outcomes are
// yielded (the driver discards Err, but this preserves the partial
// environment for higher layers per §4.2).
type factStream struct {
	tokens  []logicdb.Value
	facts   []storage.Tuple
	env     logicdb.Bindings
	opts    *Options
	idx     int
	current Outcome
}

func (f *factStream) Next() bool {
	if f.idx >= len(f.facts) {
		return false
	}
	fact := f.facts[f.idx]
	f.idx++

	factLiterals := make([]logicdb.Value, len(fact))
	for i, v := range fact {
		factLiterals[i] = logicdb.Lit(v)
	}

	result, err := unify.Unify(f.tokens, factLiterals, f.env)
	if err != nil {
		f.current = Outcome{Env: unify.PartialBindings(err, f.env), Ok: false}
		f.opts.annotate(annotations.Event{Name: annotations.UnifyFail, Data: map[string]interface{}{"reason": err.Error()}})
		return true
	}
	f.current = Outcome{Env: result, Ok: true}
	f.opts.annotate(annotations.Event{Name: annotations.ConstraintBinding, Data: map[string]interface{}{"env": result}})
	return true
}

func (f *factStream) Outcome() Outcome { return f.current }
func (f *factStream) Close() error     { return nil }

// ruleStream unifies a relation's argument tokens against a rule's
// parameters to obtain an entry environment, then recursively drives
// the backtracker over the rule body with that entry environment,
// yielding every resulting environment as Ok.
type ruleStream struct {
	inner   BindingStream
	current Outcome
}

func newRuleStream(tokens []logicdb.Value, rule storage.Rule, db *storage.Database, env logicdb.Bindings, opts *Options) Stream {
	entryEnv, err := unify.Unify(tokens, rule.Params, env)
	if err != nil {
		return emptyStream{}
	}
	return &ruleStream{inner: Backtrack([]logicdb.Constraint{rule.Body}, db, entryEnv, opts)}
}

func (r *ruleStream) Next() bool {
	if !r.inner.Next() {
		return false
	}
	r.current = Outcome{Env: r.inner.Bindings(), Ok: true}
	return true
}

func (r *ruleStream) Outcome() Outcome { return r.current }
func (r *ruleStream) Close() error     { return r.inner.Close() }
