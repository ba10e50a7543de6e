package solver

import "github.com/arcadia-db/logicdb/annotations"

// Options carries optional cross-cutting concerns threaded through the
// solver as an explicit parameter, never by global state, matching how the teacher
// repo's executor takes an annotations.Handler through an options
// struct rather than a package-level variable.
type Options struct {
	// Collector receives trace events if non-nil. A nil Collector (the
	// zero value of Options) disables tracing entirely with no
	// overhead beyond a nil check.
	Collector *annotations.Collector
}

func (o *Options) annotate(event annotations.Event) {
	if o == nil || o.Collector == nil {
		return
	}
	o.Collector.Add(event)
}
