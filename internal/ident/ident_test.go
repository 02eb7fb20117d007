package ident

import (
	"sync"
	"testing"
)

func TestFindOrCreateIsIdempotent(t *testing.T) {
	table := NewTable()
	a := table.FindOrCreate("foo")
	b := table.FindOrCreate("foo")
	c := table.FindOrCreate("bar")

	if a != b {
		t.Error("expected identical handles for the same text")
	}
	if a == c {
		t.Error("expected different handles for different text")
	}
	if a.String() != "foo" {
		t.Errorf("expected 'foo', got %q", a.String())
	}
	if table.Len() != 2 {
		t.Errorf("expected 2 interned names, got %d", table.Len())
	}
}

func TestTablesAreIndependent(t *testing.T) {
	a := NewTable().FindOrCreate("x")
	b := NewTable().FindOrCreate("x")
	if a == b {
		t.Error("identifiers from different tables should not compare equal")
	}
	if a.String() != b.String() {
		t.Error("expected equal text")
	}
}

func TestZeroIdentifier(t *testing.T) {
	var id Identifier
	if !id.IsZero() {
		t.Error("expected zero identifier")
	}
	if id.String() != "" {
		t.Errorf("expected empty text, got %q", id.String())
	}
	if FindOrCreate("").IsZero() {
		t.Error("interning the empty string should still produce a handle")
	}
}

func TestConcurrentFindOrCreate(t *testing.T) {
	table := NewTable()
	var wg sync.WaitGroup
	results := make([]Identifier, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = table.FindOrCreate("shared")
		}(i)
	}
	wg.Wait()

	for i, id := range results {
		if id != results[0] {
			t.Fatalf("result %d differs from result 0", i)
		}
	}
	if table.Len() != 1 {
		t.Errorf("expected 1 interned name, got %d", table.Len())
	}
}
