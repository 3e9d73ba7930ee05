package roster

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/starford/crewboard/internal/models"
)

func TestToggle_BobAmy(t *testing.T) {
	c := New(NewCounter(0))
	if err := c.Seed(
		models.Record{ID: 1, Fields: models.Fields{DisplayName: "Bob"}},
		models.Record{ID: 2, Fields: models.Fields{DisplayName: "Amy"}},
	); err != nil {
		t.Fatal(err)
	}

	var tog Toggle
	if tog.Direction() != Ascending {
		t.Fatalf("initial direction = %q, want asc", tog.Direction())
	}

	if dir := tog.Invoke(c); dir != Ascending {
		t.Errorf("first invoke applied %q", dir)
	}
	if diff := cmp.Diff([]string{"Amy", "Bob"}, names(c.Records())); diff != "" {
		t.Errorf("after asc (-want +got):\n%s", diff)
	}

	if dir := tog.Invoke(c); dir != Descending {
		t.Errorf("second invoke applied %q", dir)
	}
	if diff := cmp.Diff([]string{"Bob", "Amy"}, names(c.Records())); diff != "" {
		t.Errorf("after desc (-want +got):\n%s", diff)
	}

	if tog.Direction() != Ascending {
		t.Errorf("toggle did not return to asc: %q", tog.Direction())
	}
}

func TestDirection_Opposite(t *testing.T) {
	if Ascending.Opposite() != Descending || Descending.Opposite() != Ascending {
		t.Error("Opposite is not an involution")
	}
}
