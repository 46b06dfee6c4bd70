package games

import "testing"

func TestRegistryConstructionValidatesSamples(t *testing.T) {
	r, err := NewRegistry()
	if err != nil { t.Fatalf("NewRegistry: %v", err) }
	if len(r.All()) != 5 { t.Fatalf("expected 5 games, got %d", len(r.All())) }
}

func TestRegistryOrderIsFixed(t *testing.T) {
	r, err := NewRegistry()
	if err != nil { t.Fatalf("NewRegistry: %v", err) }
	want := []ID{Wordle, Connections, Framed, Gisnep, Bandle}
	for i, g := range r.All() {
		if g.Definition().ID != want[i] { t.Fatalf("order[%d]: got %s, want %s", i, g.Definition().ID, want[i]) }
	}
}

func TestRegistryFirstMatchWins(t *testing.T) {
	r, err := NewRegistry()
	if err != nil { t.Fatalf("NewRegistry: %v", err) }
	g, m, err := r.Match("Wordle 100 4/6\n🟩🟩🟩🟩🟩")
	if err != nil { t.Fatalf("Match: %v", err) }
	if g == nil || m == nil { t.Fatalf("expected a match") }
	if g.Definition().ID != Wordle { t.Fatalf("matched %s, want wordle", g.Definition().ID) }
}

func TestRegistryNoMatchIsNormal(t *testing.T) {
	r, err := NewRegistry()
	if err != nil { t.Fatalf("NewRegistry: %v", err) }
	g, m, err := r.Match("good morning everyone")
	if err != nil { t.Fatalf("Match: %v", err) }
	if g != nil || m != nil { t.Fatalf("plain chat must not match") }
}

func TestRegistrySamplesDisjoint(t *testing.T) {
	r, err := NewRegistry()
	if err != nil { t.Fatalf("NewRegistry: %v", err) }
	for _, owner := range r.All() {
		def := owner.Definition()
		g, m, err := r.Match(def.Sample)
		if err != nil { t.Fatalf("sample for %s: %v", def.ID, err) }
		if m == nil { t.Fatalf("sample for %s not matched", def.ID) }
		if g.Definition().ID != def.ID { t.Fatalf("sample for %s claimed by %s", def.ID, g.Definition().ID) }
	}
}

func TestRegistryLookup(t *testing.T) {
	r, err := NewRegistry()
	if err != nil { t.Fatalf("NewRegistry: %v", err) }
	if _, ok := r.Lookup(Gisnep); !ok { t.Fatalf("gisnep not registered") }
	if _, ok := r.Lookup(ID("sudoku")); ok { t.Fatalf("unknown id resolved") }
}
