package logicdb

import (
	"fmt"
	"math/big"
	"strings"
)

// DBKind tags the variant held by a DBValue.
type DBKind uint8

const (
	KindText DBKind = iota
	KindNumber
	KindFloat
	KindRelationID
	KindList
)

// DBValue is the ground value universe stored in facts: text, arbitrary
// precision numbers, decimal pairs, relation names, and lists thereof.
// Only the fields matching Kind are meaningful; the zero value of the
// others is ignored.
type DBValue struct {
	Kind DBKind
	Text string   // KindText, KindRelationID
	Int  *big.Int // KindNumber (whole value), KindFloat (integer part)
	Frac *big.Int // KindFloat (nonnegative fractional part)
	List []DBValue
}

// TextValue builds a Text value.
func TextValue(s string) DBValue { return DBValue{Kind: KindText, Text: s} }

// Number builds a Number value from an int64 for convenience; arbitrary
// precision values should be built with NumberBig.
func Number(n int64) DBValue { return DBValue{Kind: KindNumber, Int: big.NewInt(n)} }

// NumberBig builds a Number value from a *big.Int.
func NumberBig(n *big.Int) DBValue { return DBValue{Kind: KindNumber, Int: new(big.Int).Set(n)} }

// FloatValue builds a Float value: an integer part and a nonnegative
// fractional part, not an IEEE float.
func FloatValue(intPart int64, frac int64) DBValue {
	return DBValue{Kind: KindFloat, Int: big.NewInt(intPart), Frac: big.NewInt(frac)}
}

// FloatValueBig builds a Float value from big.Int components.
func FloatValueBig(intPart, frac *big.Int) DBValue {
	return DBValue{Kind: KindFloat, Int: new(big.Int).Set(intPart), Frac: new(big.Int).Set(frac)}
}

// RelationIDValue builds a RelationID value. Comparisons against it are
// case-insensitive; storage keys are case-folded separately by callers.
func RelationIDValue(name string) DBValue { return DBValue{Kind: KindRelationID, Text: name} }

// ListValue builds a List value.
func ListValue(items []DBValue) DBValue { return DBValue{Kind: KindList, List: items} }

func (v DBValue) fracOrZero() *big.Int {
	if v.Frac == nil {
		return big.NewInt(0)
	}
	return v.Frac
}

// String renders a DBValue for diagnostics.
func (v DBValue) String() string {
	switch v.Kind {
	case KindText:
		return fmt.Sprintf("%q", v.Text)
	case KindNumber:
		return v.Int.String()
	case KindFloat:
		return fmt.Sprintf("%s.%s", v.Int.String(), v.fracOrZero().String())
	case KindRelationID:
		return strings.ToUpper(v.Text)
	case KindList:
		parts := make([]string, len(v.List))
		for i, item := range v.List {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, " ") + "]"
	default:
		return "<invalid DBValue>"
	}
}
