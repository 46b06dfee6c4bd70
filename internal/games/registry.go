package games

import "fmt"

// Registry holds the supported games in fixed evaluation order. First match
// wins; the order never changes at runtime.
type Registry struct {
	ordered []Game
	byID    map[ID]Game
}

// NewRegistry builds the five supported games and verifies that each game's
// canonical sample is claimed by that game alone. An ambiguous pair is a
// construction error so it can only ever surface at startup.
func NewRegistry() (*Registry, error) {
	r := &Registry{byID: make(map[ID]Game)}
	for _, g := range []Game{newWordle(), newConnections(), newFramed(), newGisnep(), newBandle()} {
		r.ordered = append(r.ordered, g)
		r.byID[g.Definition().ID] = g
	}
	if err := r.validateSamples(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) validateSamples() error {
	for _, owner := range r.ordered {
		def := owner.Definition()
		for _, g := range r.ordered {
			m, err := g.Match(def.Sample)
			claimed := m != nil || err != nil
			if g.Definition().ID == def.ID {
				if m == nil || err != nil {
					return fmt.Errorf("%s does not match its own sample: %v", def.ID, err)
				}
				continue
			}
			if claimed {
				return &AmbiguousMatchError{Sample: def.ID, Matched: g.Definition().ID}
			}
		}
	}
	return nil
}

// Match runs the matchers in registry order and returns the first game that
// claims the text. A FormatError from a matcher stops the scan: the text was
// recognizably that game's share, just unusable.
func (r *Registry) Match(text string) (Game, *RawMatch, error) {
	for _, g := range r.ordered {
		m, err := g.Match(text)
		if err != nil {
			return g, nil, err
		}
		if m != nil {
			return g, m, nil
		}
	}
	return nil, nil, nil
}

func (r *Registry) Lookup(id ID) (Game, bool) {
	g, ok := r.byID[id]
	return g, ok
}

// All returns the games in evaluation order.
func (r *Registry) All() []Game {
	out := make([]Game, len(r.ordered))
	copy(out, r.ordered)
	return out
}
