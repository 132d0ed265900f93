// Package event holds the attribute/event vocabulary emitted by the relay
// endpoint for host-side observability.
package event

// Attribute is a key/value pair attached to a response or event.
type Attribute struct {
	Key   string
	Value string
}

// Event is a typed group of attributes.
type Event struct {
	Type       string
	Attributes []Attribute
}

// New returns an event of the given type with alternating key/value pairs.
// An odd trailing key is dropped.
func New(typ string, kv ...string) Event {
	ev := Event{Type: typ}
	for i := 0; i+1 < len(kv); i += 2 {
		ev.Attributes = append(ev.Attributes, Attribute{Key: kv[i], Value: kv[i+1]})
	}
	return ev
}
