package solver

import "github.com/arcadia-db/logicdb"

// Outcome is a single item yielded by a constraint enumerator: an
// extended environment, tagged Ok for a satisfying binding or Err (Ok
// == false) for a negated success or discarded failure, per §4.2.
type Outcome struct {
	Env logicdb.Bindings
	Ok  bool
}

// Stream is a single-pass, pull-based lazy sequence of Outcomes. Progress
// happens only on Next(); between calls the stream is idle and holds no
// more state than its fields. Closing an unexhausted stream must
// reclaim any sub-streams it opened.
type Stream interface {
	Next() bool
	Outcome() Outcome
	Close() error
}

// BindingStream is a pull-based lazy sequence of successful bindings,
// the shape the backtracking driver exposes to callers.
type BindingStream interface {
	Next() bool
	Bindings() logicdb.Bindings
	Close() error
}

// emptyStream never yields anything.
type emptyStream struct{}

func (emptyStream) Next() bool       { return false }
func (emptyStream) Outcome() Outcome { return Outcome{} }
func (emptyStream) Close() error     { return nil }

// sliceStream replays a precomputed list of Outcomes. Used where a
// constraint has a single possible answer (Comparison, Unification) so
// the rest of the driver can treat every constraint uniformly as a
// Stream.
type sliceStream struct {
	items []Outcome
	idx   int
}

func (s *sliceStream) Next() bool {
	if s.idx >= len(s.items) {
		return false
	}
	s.idx++
	return true
}

func (s *sliceStream) Outcome() Outcome { return s.items[s.idx-1] }
func (s *sliceStream) Close() error     { return nil }
