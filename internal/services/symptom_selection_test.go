package services

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestToggleNoSymptomsIsIdempotent(t *testing.T) {
	t.Parallel()

	starts := []SymptomSelection{
		NewSymptomSelection(),
		NewSymptomSelection("cramps"),
		NewSymptomSelection("cramps", "headache", "fatigue"),
		NewSymptomSelection(NoSymptomsID),
		NewSymptomSelection(NoSymptomsID, "cramps"),
		{},
	}

	for _, start := range starts {
		once := start.Toggle(NoSymptomsID)
		twice := once.Toggle(NoSymptomsID)
		if diff := cmp.Diff([]string{NoSymptomsID}, once.IDs()); diff != "" {
			t.Fatalf("unexpected selection after one toggle of %v (-want +got):\n%s", start.IDs(), diff)
		}
		if diff := cmp.Diff(once.IDs(), twice.IDs()); diff != "" {
			t.Fatalf("second toggle changed selection (-once +twice):\n%s", diff)
		}
	}
}

func TestToggleNeverMixesSentinelWithOtherSymptoms(t *testing.T) {
	t.Parallel()

	pool := []string{NoSymptomsID, "cramps", "headache", "bloating", "fatigue", "nausea"}
	random := rand.New(rand.NewSource(42))

	for run := 0; run < 200; run++ {
		initial := make([]string, 0, 3)
		for _, id := range pool {
			if random.Intn(3) == 0 {
				initial = append(initial, id)
			}
		}
		selection := NewSymptomSelection(initial...)

		for step := 0; step < 25; step++ {
			selection = selection.Toggle(pool[random.Intn(len(pool))])
			if selection.Contains(NoSymptomsID) && selection.Len() > 1 {
				t.Fatalf("run %d step %d: sentinel mixed with other symptoms: %v", run, step, selection.IDs())
			}
		}
	}
}

func TestToggleAddsAndRemoves(t *testing.T) {
	t.Parallel()

	selection := NewSymptomSelection(NoSymptomsID)

	selection = selection.Toggle("cramps")
	if diff := cmp.Diff([]string{"cramps"}, selection.IDs()); diff != "" {
		t.Fatalf("adding a symptom should clear the sentinel (-want +got):\n%s", diff)
	}

	selection = selection.Toggle("headache")
	selection = selection.Toggle("cramps")
	if diff := cmp.Diff([]string{"headache"}, selection.IDs()); diff != "" {
		t.Fatalf("toggling a present symptom should remove it (-want +got):\n%s", diff)
	}
}

func TestToggleDoesNotMutateReceiver(t *testing.T) {
	t.Parallel()

	original := NewSymptomSelection("cramps")
	_ = original.Toggle("headache")
	_ = original.Toggle(NoSymptomsID)
	_ = original.Toggle("cramps")

	if diff := cmp.Diff([]string{"cramps"}, original.IDs()); diff != "" {
		t.Fatalf("receiver was mutated (-want +got):\n%s", diff)
	}
}

func TestDiffSelections(t *testing.T) {
	t.Parallel()

	before := NewSymptomSelection("cramps", "headache")
	after := before.Toggle(NoSymptomsID)

	added, removed := DiffSelections(before, after)
	if diff := cmp.Diff([]string{NoSymptomsID}, added); diff != "" {
		t.Fatalf("unexpected added ids (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"cramps", "headache"}, removed); diff != "" {
		t.Fatalf("unexpected removed ids (-want +got):\n%s", diff)
	}
}

func TestSymptomSelectionMarshalsSortedArray(t *testing.T) {
	t.Parallel()

	encoded, err := json.Marshal(NewSymptomSelection("nausea", "acne", " ", "acne"))
	if err != nil {
		t.Fatalf("marshal selection: %v", err)
	}
	if string(encoded) != `["acne","nausea"]` {
		t.Fatalf("unexpected json %s", encoded)
	}

	empty, err := json.Marshal(SymptomSelection{})
	if err != nil {
		t.Fatalf("marshal empty selection: %v", err)
	}
	if string(empty) != `[]` {
		t.Fatalf("expected empty array, got %s", empty)
	}
}
