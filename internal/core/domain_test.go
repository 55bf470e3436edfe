package core

import "testing"

func TestLabelsValidate(t *testing.T) {
	cases := []struct {
		l  Labels
		ok bool
	}{
		{DefaultLabels, true},
		{Labels{Date: "Date", Time: "Time", Amount: "Amount"}, true},
		{Labels{Date: "Date", Time: "Time"}, false},
		{Labels{}, false},
	}
	for i, tc := range cases {
		err := tc.l.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestSnapshotSingleDate(t *testing.T) {
	s := &Snapshot{Dates: []string{"01/05/2024"}}
	if d, ok := s.SingleDate(); !ok || d != "01/05/2024" {
		t.Fatalf("got (%q, %v)", d, ok)
	}

	s = &Snapshot{Dates: []string{"01/05/2024", "02/05/2024"}}
	if _, ok := s.SingleDate(); ok {
		t.Fatal("expected no single date with two entries")
	}

	s = &Snapshot{}
	if _, ok := s.SingleDate(); ok {
		t.Fatal("expected no single date when empty")
	}
}

func TestCellAccessors(t *testing.T) {
	c := NewText(" 01/05/2024 ")
	if s, ok := c.Text(); !ok || s != " 01/05/2024 " {
		t.Fatalf("text cell: got (%q, %v)", s, ok)
	}
	if _, ok := c.Number(); ok {
		t.Fatal("text cell must not report a number")
	}

	n := NewNumber(0.5)
	if v, ok := n.Number(); !ok || v != 0.5 {
		t.Fatalf("number cell: got (%v, %v)", v, ok)
	}
	if !EmptyCell.IsEmpty() {
		t.Fatal("zero cell must be empty")
	}
	if NewNumber(0).IsEmpty() {
		t.Fatal("numeric zero is a value, not empty")
	}
}
