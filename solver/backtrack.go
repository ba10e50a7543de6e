package solver

import (
	"github.com/arcadia-db/logicdb"
	"github.com/arcadia-db/logicdb/annotations"
	"github.com/arcadia-db/logicdb/storage"
)

// stackFrame holds one open sub-stream in the backtracking driver's
// depth-first search, keyed by its position in the constraint list.
type stackFrame struct {
	idx    int
	stream Stream
}

// backtrackStream is the state machine behind Backtrack: a stack of open
// per-constraint enumerators, exactly mirroring how recursion over the
// constraint list would look if Go had first-class generators (§9).
type backtrackStream struct {
	constraints []logicdb.Constraint
	db          *storage.Database
	opts        *Options
	stack       []stackFrame

	emptyCase bool
	emptyDone bool
	seedEnv   logicdb.Bindings

	current logicdb.Bindings
}

// Backtrack produces the ordered cross-product of per-constraint
// successes by depth-first, left-to-right enumeration, per §4.3. An
// empty constraint list yields env exactly once.
func Backtrack(constraints []logicdb.Constraint, db *storage.Database, env logicdb.Bindings, opts *Options) BindingStream {
	opts.annotate(annotations.Event{Name: annotations.BacktrackEnter, Data: map[string]interface{}{"count": len(constraints)}})

	b := &backtrackStream{constraints: constraints, db: db, opts: opts}
	if len(constraints) == 0 {
		b.emptyCase = true
		b.seedEnv = env
		return b
	}
	b.stack = []stackFrame{{idx: 0, stream: PossibleBindings(&constraints[0], db, env, opts)}}
	return b
}

func (b *backtrackStream) Next() bool {
	if b.emptyCase {
		if b.emptyDone {
			return false
		}
		b.emptyDone = true
		b.current = b.seedEnv
		b.opts.annotate(annotations.Event{Name: annotations.BacktrackYield, Data: map[string]interface{}{"env": b.current}})
		return true
	}

	for len(b.stack) > 0 {
		top := &b.stack[len(b.stack)-1]

		if top.stream.Next() {
			outcome := top.stream.Outcome()
			if !outcome.Ok {
				// Err items from this constraint's stream are
				// discarded per §4.3 step 4.
				continue
			}

			nextIdx := top.idx + 1
			if nextIdx == len(b.constraints) {
				b.current = outcome.Env
				b.opts.annotate(annotations.Event{Name: annotations.BacktrackYield, Data: map[string]interface{}{"env": b.current}})
				return true
			}

			b.stack = append(b.stack, stackFrame{
				idx:    nextIdx,
				stream: PossibleBindings(&b.constraints[nextIdx], b.db, outcome.Env, b.opts),
			})
			continue
		}

		top.stream.Close()
		b.stack = b.stack[:len(b.stack)-1]
	}

	b.opts.annotate(annotations.Event{Name: annotations.BacktrackExhaust})
	return false
}

func (b *backtrackStream) Bindings() logicdb.Bindings { return b.current }

func (b *backtrackStream) Close() error {
	for _, f := range b.stack {
		f.stream.Close()
	}
	b.stack = nil
	return nil
}
