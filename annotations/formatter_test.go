package annotations

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputFormatterFormatsKnownEvents(t *testing.T) {
	f := &OutputFormatter{useColor: false, writer: &bytes.Buffer{}}

	cases := []struct {
		event    Event
		contains string
	}{
		{Event{Name: ConstraintBegin, Data: map[string]interface{}{"constraint": 0}}, "evaluating"},
		{Event{Name: ConstraintBinding, Data: map[string]interface{}{"env": "{x: 1}"}}, "{x: 1}"},
		{Event{Name: UnifyFail, Data: map[string]interface{}{"reason": "mismatch"}}, "mismatch"},
		{Event{Name: BacktrackEnter, Data: map[string]interface{}{"count": 3}}, "3 constraint"},
		{Event{Name: BacktrackYield, Data: map[string]interface{}{"env": "{y: 2}"}}, "{y: 2}"},
		{Event{Name: BacktrackExhaust, Data: nil}, "exhausted"},
	}

	for _, c := range cases {
		line := f.Format(c.event)
		assert.Contains(t, line, c.contains, "event %s", c.event.Name)
	}
}

func TestOutputFormatterIgnoresUnknownEvents(t *testing.T) {
	f := &OutputFormatter{useColor: false, writer: &bytes.Buffer{}}
	assert.Empty(t, f.Format(Event{Name: "not-a-real-event"}))
}

func TestOutputFormatterHandleWritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{useColor: false, writer: &buf}
	f.Handle(Event{Name: BacktrackExhaust})
	assert.Contains(t, buf.String(), "exhausted")
}

func TestOutputFormatterNoColorLeavesTextUnchanged(t *testing.T) {
	f := &OutputFormatter{useColor: false, writer: &bytes.Buffer{}}
	assert.Equal(t, "plain", f.colorize("plain", 0))
}

func TestCollectorRecordsEventsInOrder(t *testing.T) {
	var got []Event
	c := NewCollector(func(e Event) { got = append(got, e) })

	c.Add(Event{Name: ConstraintBegin})
	c.Add(Event{Name: BacktrackYield})

	events := c.Events()
	assert.Len(t, events, 2)
	assert.Equal(t, ConstraintBegin, events[0].Name)
	assert.Equal(t, BacktrackYield, events[1].Name)
	assert.Len(t, got, 2)
}

func TestCollectorWithNilHandlerIsNoOp(t *testing.T) {
	c := NewCollector(nil)
	c.Add(Event{Name: ConstraintBegin})
	assert.Empty(t, c.Events())
}

func TestCollectorResetClearsEvents(t *testing.T) {
	c := NewCollector(func(Event) {})
	c.Add(Event{Name: ConstraintBegin})
	c.Reset()
	assert.Empty(t, c.Events())
}
