package unify

import "github.com/arcadia-db/logicdb"

// Compare evaluates a Comparison constraint's predicate. An unbound
// variable on either side is treated as compatible with any comparison
// and yields true — unusual, but preserved per the engine's weak
// semantics (§9).
func Compare(op logicdb.EqOp, a, b logicdb.Value, env logicdb.Bindings) bool {
	a = env.Resolve(a)
	b = env.Resolve(b)

	switch {
	case a.Kind == logicdb.ValueLiteral && b.Kind == logicdb.ValueLiteral:
		return compareLiterals(op, a.Literal, b.Literal)

	case a.Kind == logicdb.ValueVariable || b.Kind == logicdb.ValueVariable:
		// Resolve already walked bound chains; if we still see a
		// Variable here it is unbound.
		return true

	default:
		return false
	}
}

func compareLiterals(op logicdb.EqOp, a, b logicdb.DBValue) bool {
	if op == logicdb.EqOpEqual {
		return logicdb.EqualDBValues(a, b)
	}

	order := logicdb.CompareDBValues(a, b)
	if order == logicdb.OrderUndefined {
		return false
	}

	switch op {
	case logicdb.EqOpLess:
		return order == logicdb.OrderLess
	case logicdb.EqOpLessOrEqual:
		return order == logicdb.OrderLess || order == logicdb.OrderEqual
	case logicdb.EqOpGreaterOrEqual:
		return order == logicdb.OrderGreater || order == logicdb.OrderEqual
	case logicdb.EqOpGreater:
		return order == logicdb.OrderGreater
	default:
		return false
	}
}
