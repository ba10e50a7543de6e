package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcadia-db/logicdb"
)

func TestDatabaseIsEmpty(t *testing.T) {
	db := NewDatabase()
	assert.True(t, db.IsEmpty())

	db.InsertFact([]logicdb.DBValue{logicdb.TextValue("a"), logicdb.RelationIDValue("p"), logicdb.TextValue("b")})
	assert.False(t, db.IsEmpty())
}

func TestInsertFactIsCaseInsensitiveByRelationID(t *testing.T) {
	db := NewDatabase()
	db.InsertFact([]logicdb.DBValue{logicdb.TextValue("alice"), logicdb.RelationIDValue("parent"), logicdb.TextValue("bob")})

	got := db.Facts("PARENT")
	require.Len(t, got, 1)
	assert.Equal(t, "alice", got[0][0].Text)
	assert.Equal(t, "bob", got[0][1].Text)
}

func TestInsertFactStripsRelationIDSlot(t *testing.T) {
	db := NewDatabase()
	db.InsertFact([]logicdb.DBValue{logicdb.TextValue("x"), logicdb.RelationIDValue("rel")})

	got := db.Facts("rel")
	require.Len(t, got, 1)
	require.Len(t, got[0], 1)
	assert.Equal(t, "x", got[0][0].Text)
}

func TestInsertFactPanicsOnShortTuple(t *testing.T) {
	assert.Panics(t, func() {
		NewDatabase().InsertFact([]logicdb.DBValue{logicdb.TextValue("a")})
	})
}

func TestInsertFactPanicsWhenSecondTermIsNotRelationID(t *testing.T) {
	assert.Panics(t, func() {
		NewDatabase().InsertFact([]logicdb.DBValue{logicdb.TextValue("a"), logicdb.TextValue("not-a-relation")})
	})
}

func TestInsertRuleNormalizesIDAndOverwrites(t *testing.T) {
	db := NewDatabase()
	body1 := logicdb.NewComparison(logicdb.EqOpEqual, logicdb.Var("x"), logicdb.Lit(logicdb.Number(1)))
	body2 := logicdb.NewComparison(logicdb.EqOpEqual, logicdb.Var("x"), logicdb.Lit(logicdb.Number(2)))

	db.InsertRule("greater", []logicdb.Value{logicdb.Var("x")}, body1)
	db.InsertRule("GREATER", []logicdb.Value{logicdb.Var("x")}, body2)

	rule, ok := db.Rule("greater")
	require.True(t, ok)
	assert.True(t, logicdb.EqualDBValues(rule.Body.B.Literal, logicdb.Number(2)), "expected the second InsertRule to overwrite the first")
}

func TestRuleNotFound(t *testing.T) {
	db := NewDatabase()
	_, ok := db.Rule("nonexistent")
	assert.False(t, ok)
}
