package screening

import "testing"

func TestRecordSetKeepsFirstValue(t *testing.T) {
	t.Parallel()

	var r CandidateRecord
	r.Set(FieldEmail, "john@example.com")
	r.Set(FieldEmail, "other@example.com")

	if r.Email != "john@example.com" {
		t.Fatalf("expected first accepted value to stay, got %q", r.Email)
	}
}

func TestRecordCompleteness(t *testing.T) {
	t.Parallel()

	var r CandidateRecord
	if r.Complete() {
		t.Fatal("empty record must not be complete")
	}
	if missing := r.MissingFields(); len(missing) != len(requiredFields) {
		t.Fatalf("expected all fields missing, got %v", missing)
	}

	r.Set(FieldName, "John Doe")
	r.Set(FieldEmail, "john@example.com")
	r.Set(FieldPhone, "9876543210")
	r.Set(FieldExperience, "3")
	r.Set(FieldPosition, "Backend Developer")
	r.Set(FieldLocation, "Pune")

	if r.Complete() {
		t.Fatal("record without a tech stack must not be complete")
	}
	if missing := r.MissingFields(); len(missing) != 1 || missing[0] != FieldTechStack {
		t.Fatalf("expected only the tech stack missing, got %v", missing)
	}

	r.Set(FieldTechStack, "Python, Django")
	if !r.Complete() {
		t.Fatal("expected a fully filled record to be complete")
	}
}
