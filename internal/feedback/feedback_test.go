package feedback

import "testing"

func TestParseType(t *testing.T) {
	if got, err := ParseType(""); err != nil || got != TypeGeneral {
		t.Fatalf("expected default general, got %q %v", got, err)
	}
	if got, err := ParseType("rejection"); err != nil || got != TypeRejection {
		t.Fatalf("expected rejection, got %q %v", got, err)
	}
	if _, err := ParseType("note"); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}

func TestVisible_HidesInternal(t *testing.T) {
	items := []Feedback{
		{ID: "1", Content: "Internal note", IsInternal: true},
		{ID: "2", Content: "Public comment", IsInternal: false},
	}
	if got := Visible(items, true); len(got) != 2 {
		t.Fatalf("staff should see both, got %d", len(got))
	}
	got := Visible(items, false)
	if len(got) != 1 || got[0].Content != "Public comment" {
		t.Fatalf("expected only public comment, got %+v", got)
	}
}
