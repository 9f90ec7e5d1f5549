package aggregate

import "testing"

type parent struct {
	ID       int
	Name     string
	Children []string
}

func newBuilder() *SplitOn[parent, string, int] {
	return NewSplitOn[parent, string, int](func(p *parent, child string) {
		p.Children = append(p.Children, child)
	})
}

func TestSplitOn_NonContiguousParents(t *testing.T) {
	b := newBuilder()
	b.Add(1, parent{ID: 1, Name: "C1"}, "E1")
	b.Add(2, parent{ID: 2, Name: "C2"}, "E2")
	b.Add(1, parent{ID: 1, Name: "C1 duplicate"}, "E3")

	got := b.Result()
	if len(got) != 2 {
		t.Fatalf("expected 2 parents, got %d", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 2 {
		t.Errorf("expected first-seen order [1 2], got [%d %d]", got[0].ID, got[1].ID)
	}
	if got[0].Name != "C1" {
		t.Errorf("expected first row to supply the parent, got %q", got[0].Name)
	}
	if len(got[0].Children) != 2 || got[0].Children[0] != "E1" || got[0].Children[1] != "E3" {
		t.Errorf("unexpected children for C1: %v", got[0].Children)
	}
	if len(got[1].Children) != 1 || got[1].Children[0] != "E2" {
		t.Errorf("unexpected children for C2: %v", got[1].Children)
	}
}

func TestSplitOn_Empty(t *testing.T) {
	b := newBuilder()
	got := b.Result()
	if got == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(got) != 0 || b.Len() != 0 {
		t.Errorf("expected no parents, got %d", len(got))
	}
}

func TestSplitOn_ChildCountMatchesRows(t *testing.T) {
	b := newBuilder()
	rows := []struct {
		key   int
		child string
	}{
		{3, "a"}, {1, "b"}, {3, "c"}, {2, "d"}, {1, "e"}, {3, "f"},
	}
	for _, r := range rows {
		b.Add(r.key, parent{ID: r.key}, r.child)
	}

	total := 0
	seen := map[int]bool{}
	for _, p := range b.Result() {
		if seen[p.ID] {
			t.Errorf("parent %d appears twice", p.ID)
		}
		seen[p.ID] = true
		total += len(p.Children)
	}
	if total != len(rows) {
		t.Errorf("expected %d children, got %d", len(rows), total)
	}
	if b.Len() != 3 {
		t.Errorf("expected 3 parents, got %d", b.Len())
	}
}
