package items

import "testing"

func TestFilterForLevel(t *testing.T) {
	set := []Item{
		{ID: 1, Text: "Short and sweet."},
		{ID: 2, Text: "This sentence is deliberately written to contain more than ten words."},
	}
	short, err := FilterForLevel("short")
	if err != nil {
		t.Fatalf("short filter: %v", err)
	}
	if got := Filter(set, short); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("unexpected short items: %+v", got)
	}
	long, err := FilterForLevel("LONG")
	if err != nil {
		t.Fatalf("long filter: %v", err)
	}
	if got := Filter(set, long); len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("unexpected long items: %+v", got)
	}
	all, err := FilterForLevel("")
	if err != nil {
		t.Fatalf("all filter: %v", err)
	}
	if got := Filter(set, all); len(got) != 2 {
		t.Fatalf("expected all items, got %d", len(got))
	}
	if _, err := FilterForLevel("medium"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
