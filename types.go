package logicdb

import "strings"

// ValueKind tags the variant held by a Value.
type ValueKind uint8

const (
	ValueLiteral ValueKind = iota
	ValueVariable
	ValuePatternMatch
)

// GlobPosition selects where a PatternMatch's wildcard segment sits.
type GlobPosition uint8

const (
	GlobHead GlobPosition = iota
	GlobTail
	GlobMiddle
)

// Value is the query-language value universe: a ground literal, a
// variable reference, or a list pattern with an optional glob segment.
type Value struct {
	Kind           ValueKind
	Literal        DBValue
	VariableName   string
	ExplicitValues []Value
	IsGlob         bool
	GlobPosition   GlobPosition
}

// Lit builds a Literal value.
func Lit(v DBValue) Value { return Value{Kind: ValueLiteral, Literal: v} }

// Var builds a Variable value. name is an opaque identifier.
func Var(name string) Value { return Value{Kind: ValueVariable, VariableName: name} }

// Pattern builds a non-glob list pattern matching the given explicit
// values pairwise against a List literal's elements; as with Unify,
// excess elements on either side are ignored.
func Pattern(explicit ...Value) Value {
	return Value{Kind: ValuePatternMatch, ExplicitValues: explicit}
}

// GlobPattern builds a glob list pattern: explicit matches the head,
// tail, or a contiguous middle run of a List literal, per pos.
func GlobPattern(pos GlobPosition, explicit ...Value) Value {
	return Value{Kind: ValuePatternMatch, ExplicitValues: explicit, IsGlob: true, GlobPosition: pos}
}

func (v Value) String() string {
	switch v.Kind {
	case ValueLiteral:
		return v.Literal.String()
	case ValueVariable:
		return "?" + v.VariableName
	case ValuePatternMatch:
		return "<pattern>"
	default:
		return "<invalid Value>"
	}
}

// EqOp is a comparison operator for Comparison constraints.
type EqOp uint8

const (
	EqOpLess EqOp = iota
	EqOpLessOrEqual
	EqOpEqual
	EqOpGreaterOrEqual
	EqOpGreater
)

// ConstraintKind tags the variant held by a Constraint.
type ConstraintKind uint8

const (
	ConstraintRelation ConstraintKind = iota
	ConstraintUnification
	ConstraintComparison
	ConstraintNot
	ConstraintAlternatives
	ConstraintIntersections
)

// Constraint is the recursive tagged variant the solver evaluates.
type Constraint struct {
	Kind ConstraintKind

	// ConstraintRelation
	RelationID string
	Tokens     []Value

	// ConstraintUnification
	Left, Right []Value

	// ConstraintComparison
	Op   EqOp
	A, B Value

	// ConstraintNot
	Inner *Constraint

	// ConstraintAlternatives, ConstraintIntersections
	Constraints []Constraint
}

// NewRelation builds a Relation constraint from the pre-normalization
// wire shape: vs[1] must be Literal(RelationID(name)); that element is
// removed and the id is case-folded to upper case. Fatal (panics) on a
// malformed tuple per §6/§7 of the ingest contract.
func NewRelation(vs []Value) Constraint {
	if len(vs) < 2 {
		panic("logicdb: relation constraint has fewer than two terms")
	}
	second := vs[1]
	if second.Kind != ValueLiteral || second.Literal.Kind != KindRelationID {
		panic("logicdb: expected second term in relation to be a RelationID literal")
	}
	id := strings.ToUpper(second.Literal.Text)
	tokens := make([]Value, 0, len(vs)-1)
	tokens = append(tokens, vs[:1]...)
	tokens = append(tokens, vs[2:]...)
	return Constraint{Kind: ConstraintRelation, RelationID: id, Tokens: tokens}
}

// NewUnification builds a Unification constraint.
func NewUnification(left, right []Value) Constraint {
	return Constraint{Kind: ConstraintUnification, Left: left, Right: right}
}

// NewComparison builds a Comparison constraint.
func NewComparison(op EqOp, a, b Value) Constraint {
	return Constraint{Kind: ConstraintComparison, Op: op, A: a, B: b}
}

// NewNot builds a Not constraint.
func NewNot(c Constraint) Constraint {
	return Constraint{Kind: ConstraintNot, Inner: &c}
}

// NewAlternatives builds an Alternatives (logical OR) constraint.
func NewAlternatives(cs ...Constraint) Constraint {
	return Constraint{Kind: ConstraintAlternatives, Constraints: cs}
}

// NewIntersections builds an Intersections (logical AND) constraint.
func NewIntersections(cs ...Constraint) Constraint {
	return Constraint{Kind: ConstraintIntersections, Constraints: cs}
}

// Bindings maps variable names to Values. Once handed to a caller it is
// never mutated in place; Extend returns a new map sharing no backing
// array with the receiver.
type Bindings map[string]Value

// Extend returns a new Bindings with name bound to v, leaving b
// untouched. This is the only way Bindings grow.
func (b Bindings) Extend(name string, v Value) Bindings {
	out := make(Bindings, len(b)+1)
	for k, val := range b {
		out[k] = val
	}
	out[name] = v
	return out
}

// Clone returns a shallow copy of b.
func (b Bindings) Clone() Bindings {
	out := make(Bindings, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Resolve walks a chain of variable-to-variable bindings until it finds
// a literal, pattern, or an unbound variable, matching the "no
// union-find, walk on lookup" design of §9.
func (b Bindings) Resolve(v Value) Value {
	seen := map[string]bool{}
	for v.Kind == ValueVariable {
		if seen[v.VariableName] {
			// Cyclic binding (X -> Y, Y -> X): §9 accepts this is
			// representable and leaves it to the caller to avoid.
			return v
		}
		seen[v.VariableName] = true
		bound, ok := b[v.VariableName]
		if !ok {
			return v
		}
		v = bound
	}
	return v
}
