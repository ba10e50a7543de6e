// Package storage holds the keyed fact and rule tables the solver reads
// from, plus an optional BadgerDB-backed persistence layer for facts.
package storage

import (
	"strings"

	"github.com/arcadia-db/logicdb"
)

// Tuple is a stored fact: the wire tuple (§6) with its relation-name
// slot already removed.
type Tuple []logicdb.DBValue

// Rule is a named, parameterized constraint body.
type Rule struct {
	Params []logicdb.Value
	Body   logicdb.Constraint
}

// Database is the read-only collaborator the solver queries: keyed fact
// tables plus a rule table, both keyed by upper-cased relation id. It is
// safe to share by reference across concurrently-driven query streams,
// since query execution never mutates it.
type Database struct {
	facts map[string][]Tuple
	rules map[string]Rule
}

// NewDatabase creates an empty database.
func NewDatabase() *Database {
	return &Database{
		facts: make(map[string][]Tuple),
		rules: make(map[string]Rule),
	}
}

// InsertFact stores a wire fact tuple (§6): vs must have at least two
// elements, with vs[1] a RelationID. That element is removed and the
// remainder is appended to the relation's fact list in insertion order.
// Malformed input is a programmer error and panics, matching the
// ingest-malformed contract of §7.
func (d *Database) InsertFact(vs []logicdb.DBValue) {
	if len(vs) < 2 {
		panic("logicdb: fact tuple has fewer than two terms")
	}
	if vs[1].Kind != logicdb.KindRelationID {
		panic("logicdb: expected second term in fact tuple to be a RelationID")
	}
	id := strings.ToUpper(vs[1].Text)

	tuple := make(Tuple, 0, len(vs)-1)
	tuple = append(tuple, vs[:1]...)
	tuple = append(tuple, vs[2:]...)

	d.facts[id] = append(d.facts[id], tuple)
}

// InsertRule stores a rule under id, normalized to upper case,
// overwriting any prior rule with the same id.
func (d *Database) InsertRule(id string, params []logicdb.Value, body logicdb.Constraint) {
	d.rules[strings.ToUpper(id)] = Rule{Params: params, Body: body}
}

// Facts returns the stored fact tuples for relationID in insertion
// order. The returned slice must not be mutated by the caller.
func (d *Database) Facts(relationID string) []Tuple {
	return d.facts[strings.ToUpper(relationID)]
}

// Rule returns the rule stored under id, if any.
func (d *Database) Rule(id string) (Rule, bool) {
	r, ok := d.rules[strings.ToUpper(id)]
	return r, ok
}

// IsEmpty reports whether the database has no facts and no rules.
func (d *Database) IsEmpty() bool {
	return len(d.facts) == 0 && len(d.rules) == 0
}
