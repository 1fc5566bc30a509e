package modules

import "testing"

func TestGroupKeyStringAndLess(t *testing.T) {
	a := GroupKey{Specification: "A", CrossSection: 100}
	b := GroupKey{Specification: "A", CrossSection: 200}
	c := GroupKey{Specification: "B", CrossSection: 50}

	if a.String() != "A_100" {
		t.Fatalf("got %q, want %q", a.String(), "A_100")
	}
	if !a.Less(b) {
		t.Fatal("expected A_100 < A_200")
	}
	if !b.Less(c) {
		t.Fatal("expected specification to take precedence over cross-section")
	}
	if c.Less(a) {
		t.Fatal("expected B_50 to sort after A_100")
	}
}

func TestRemainderTypeWireSpelling(t *testing.T) {
	cases := map[RemainderType]string{
		Pending: "pending",
		Pseudo:  "pseudo",
		Real:    "real",
		Waste:   "waste",
	}
	for rt, want := range cases {
		if got := rt.String(); got != want {
			t.Errorf("RemainderType(%d).String() = %q, want %q", rt, got, want)
		}
		data, err := rt.MarshalJSON()
		if err != nil {
			t.Fatalf("MarshalJSON: %v", err)
		}
		if string(data) != `"`+want+`"` {
			t.Errorf("MarshalJSON = %s, want %q", data, want)
		}
	}
}

func TestSourceTypeWireSpelling(t *testing.T) {
	if SourceModule.String() != "module" {
		t.Errorf("got %q, want module", SourceModule.String())
	}
	if SourceRemainder.String() != "remainder" {
		t.Errorf("got %q, want remainder", SourceRemainder.String())
	}
}
