package core

import "testing"

func TestNewID(t *testing.T) {
	a := NewID()
	b := NewID()
	if a.IsEmpty() || b.IsEmpty() {
		t.Fatal("generated IDs must not be empty")
	}
	if a == b {
		t.Error("consecutive IDs must differ")
	}
	if len(a.String()) != 36 {
		t.Errorf("ID %q is not a UUID string", a)
	}
}

func TestNewRunID(t *testing.T) {
	id := NewRunID()
	if id.String() == "" {
		t.Error("run ID must not be empty")
	}
}

func TestErrorHelpers(t *testing.T) {
	if !IsInputError(NewSchemaError("bad header")) {
		t.Error("schema errors are input errors")
	}
	if !IsInputError(NewGroupOrderError(3, "PD", "CO")) {
		t.Error("group-order errors are input errors")
	}
	if !IsStatisticsError(ErrZeroVariance) {
		t.Error("zero variance is a statistics error")
	}
	if IsStatisticsError(ErrSchemaMismatch) {
		t.Error("schema mismatch is not a statistics error")
	}
}
