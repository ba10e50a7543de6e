package logicdb

import "testing"

func TestNewRelationNormalizesID(t *testing.T) {
	c := NewRelation([]Value{Var("subject"), Lit(RelationIDValue("parent")), Var("x"), Var("y")})
	if c.RelationID != "PARENT" {
		t.Errorf("expected upper-cased relation id, got %q", c.RelationID)
	}
	if len(c.Tokens) != 3 {
		t.Fatalf("expected 3 remaining tokens, got %d", len(c.Tokens))
	}
}

func TestNewRelationPanicsOnMalformed(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on missing relation id")
		}
	}()
	NewRelation([]Value{Var("subject")})
}

func TestNewRelationPanicsOnWrongTag(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic when index 1 is not a RelationID literal")
		}
	}()
	NewRelation([]Value{Var("subject"), Lit(TextValue("not-a-relation"))})
}

func TestBindingsExtendDoesNotMutateParent(t *testing.T) {
	base := Bindings{}
	extended := base.Extend("x", Lit(Number(1)))

	if len(base) != 0 {
		t.Error("Extend must not mutate the receiver")
	}
	if _, ok := extended["x"]; !ok {
		t.Error("extended bindings should contain the new key")
	}
}

func TestBindingsResolveWalksChain(t *testing.T) {
	env := Bindings{}
	env = env.Extend("a", Var("b"))
	env = env.Extend("b", Lit(Number(3)))

	resolved := env.Resolve(Var("a"))
	if resolved.Kind != ValueLiteral || !EqualDBValues(resolved.Literal, Number(3)) {
		t.Errorf("expected chain to resolve to Number(3), got %v", resolved)
	}
}

func TestBindingsResolveUnboundVariable(t *testing.T) {
	env := Bindings{}
	resolved := env.Resolve(Var("x"))
	if resolved.Kind != ValueVariable || resolved.VariableName != "x" {
		t.Error("expected unbound variable to resolve to itself")
	}
}

func TestBindingsResolveCyclic(t *testing.T) {
	env := Bindings{}
	env = env.Extend("x", Var("y"))
	env = env.Extend("y", Var("x"))

	// Must terminate rather than loop forever; exact result is
	// unspecified for a cyclic binding (§9).
	_ = env.Resolve(Var("x"))
}
