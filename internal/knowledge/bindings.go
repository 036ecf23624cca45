package knowledge

import "fmt"

// Binding associates one intent identifier with one knowledge base.
type Binding struct {
	Intent   string
	Domain   string // interpolated into the "no answer" reply
	Answerer Answerer
}

// Bindings is the process-wide intent -> knowledge base table. It is built
// once and only read afterwards, so concurrent lookups need no locking.
type Bindings struct {
	byIntent map[string]Binding
	order    []string
}

// NewBindings validates and freezes the given bindings.
func NewBindings(bindings ...Binding) (*Bindings, error) {
	b := &Bindings{byIntent: make(map[string]Binding, len(bindings))}
	for _, bd := range bindings {
		switch {
		case bd.Intent == "":
			return nil, ErrEmptyIntent
		case bd.Domain == "":
			return nil, fmt.Errorf("%w: %s", ErrEmptyDomain, bd.Intent)
		case bd.Answerer == nil:
			return nil, fmt.Errorf("%w: %s", ErrNilAnswerer, bd.Intent)
		}
		if _, dup := b.byIntent[bd.Intent]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateIntent, bd.Intent)
		}
		b.byIntent[bd.Intent] = bd
		b.order = append(b.order, bd.Intent)
	}
	return b, nil
}

// Lookup returns the binding for intent.
func (b *Bindings) Lookup(intent string) (Binding, bool) {
	if b == nil {
		return Binding{}, false
	}
	bd, ok := b.byIntent[intent]
	return bd, ok
}

// Intents returns the bound intents in registration order.
func (b *Bindings) Intents() []string {
	if b == nil {
		return nil
	}
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}

// Len returns the number of bindings.
func (b *Bindings) Len() int {
	if b == nil {
		return 0
	}
	return len(b.order)
}
