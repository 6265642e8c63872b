package user

import "testing"

func TestProfilePatchOnlyTouchesProvidedFields(t *testing.T) {
	u := User{
		FirstName:  "Jane",
		LastName:   "Doe",
		Email:      "jane@example.com",
		Department: "Engineering",
		Address:    Address{City: "Pune", Country: "India"},
	}

	ProfilePatch{LastName: "Smith", City: "Mumbai"}.Apply(&u)

	if u.LastName != "Smith" {
		t.Fatalf("expected lastname updated, got %q", u.LastName)
	}
	if u.FirstName != "Jane" || u.Email != "jane@example.com" || u.Department != "Engineering" {
		t.Fatalf("unrelated fields changed: %+v", u)
	}
	if u.Address.City != "Mumbai" || u.Address.Country != "India" {
		t.Fatalf("expected address merged field-wise, got %+v", u.Address)
	}
}

func TestProfilePatchMergesEducationByIndex(t *testing.T) {
	u := User{
		Education: []Education{{Degree: "BSc", Institution: "Pune University", Year: "2015"}},
	}

	ProfilePatch{
		Education: []Education{
			{Institution: "Mumbai University"},
			{Degree: "MSc", Year: "2018"},
		},
	}.Apply(&u)

	if len(u.Education) != 2 {
		t.Fatalf("expected 2 education entries, got %d", len(u.Education))
	}
	first := u.Education[0]
	if first.Degree != "BSc" || first.Institution != "Mumbai University" || first.Year != "2015" {
		t.Fatalf("expected first entry merged field-wise, got %+v", first)
	}
	second := u.Education[1]
	if second.Degree != "MSc" || second.Year != "2018" || second.Institution != "" {
		t.Fatalf("expected second entry appended, got %+v", second)
	}
}

func TestProfilePatchMergesEmergencyContact(t *testing.T) {
	u := User{Emergency: Emergency{Name: "Raj", BloodGroup: "O+"}}

	ProfilePatch{Relation: "brother", ContactNumber: "9000000001"}.Apply(&u)

	e := u.Emergency
	if e.Name != "Raj" || e.Relation != "brother" || e.ContactNumber != "9000000001" || e.BloodGroup != "O+" {
		t.Fatalf("unexpected emergency contact: %+v", e)
	}
}

func TestProfilePatchEmptyIsNoop(t *testing.T) {
	u := User{FirstName: "Jane", DOB: "1990-01-01"}
	before := u

	ProfilePatch{}.Apply(&u)

	if u.FirstName != before.FirstName || u.DOB != before.DOB {
		t.Fatalf("empty patch mutated user: %+v", u)
	}
}
