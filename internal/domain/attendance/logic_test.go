package attendance

import (
	"errors"
	"testing"
)

func contains(set []string, id string) bool {
	for _, existing := range set {
		if existing == id {
			return true
		}
	}
	return false
}

func TestApplyPresentThenAbsentMovesUser(t *testing.T) {
	rec := Record{Date: "2024-03-01"}

	if err := rec.Apply("u1", ActionPresent); err != nil {
		t.Fatalf("present: %v", err)
	}
	if !contains(rec.Present, "u1") || len(rec.Absent) != 0 {
		t.Fatalf("expected u1 in present only, got %+v", rec)
	}

	if err := rec.Apply("u1", ActionAbsent); err != nil {
		t.Fatalf("absent: %v", err)
	}
	if contains(rec.Present, "u1") {
		t.Fatalf("expected u1 removed from present, got %+v", rec.Present)
	}
	if !contains(rec.Absent, "u1") {
		t.Fatalf("expected u1 in absent, got %+v", rec.Absent)
	}
	if err := rec.Validate(); err != nil {
		t.Fatalf("sets overlap after move: %v", err)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	rec := Record{Date: "2024-03-01"}
	for i := 0; i < 3; i++ {
		if err := rec.Apply("u1", ActionPresent); err != nil {
			t.Fatalf("present: %v", err)
		}
	}
	if len(rec.Present) != 1 {
		t.Fatalf("expected one present entry, got %v", rec.Present)
	}
}

func TestApplyRejectsUnknownActionWithoutMutation(t *testing.T) {
	rec := Record{Date: "2024-03-01", Present: []string{"u1"}, Absent: []string{"u2"}}

	err := rec.Apply("u3", "Late")
	if !errors.Is(err, ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction, got %v", err)
	}
	if len(rec.Present) != 1 || len(rec.Absent) != 1 {
		t.Fatalf("record mutated on invalid action: %+v", rec)
	}
}

func TestApplyKeepsOtherUsers(t *testing.T) {
	rec := Record{Date: "2024-03-01", Present: []string{"u1", "u2"}}

	if err := rec.Apply("u1", ActionAbsent); err != nil {
		t.Fatalf("absent: %v", err)
	}
	if !contains(rec.Present, "u2") {
		t.Fatalf("expected u2 to stay present, got %+v", rec.Present)
	}
}

func TestValidateDetectsOverlap(t *testing.T) {
	rec := Record{Present: []string{"u1"}, Absent: []string{"u1"}}
	if !errors.Is(rec.Validate(), ErrOverlap) {
		t.Fatal("expected overlap error")
	}
}
