package services

import (
	"encoding/json"
	"sort"
	"strings"
)

// NoSymptomsID is the "no symptoms" entry. It never shares a selection with
// any other identifier.
const NoSymptomsID = "tidak-ada"

// SymptomSelection is an immutable set of symptom identifiers for one day.
// The zero value is an empty selection.
type SymptomSelection struct {
	ids map[string]struct{}
}

func NewSymptomSelection(ids ...string) SymptomSelection {
	selection := SymptomSelection{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		selection.ids[id] = struct{}{}
	}
	return selection
}

// Toggle returns the selection with id flipped. Choosing NoSymptomsID clears
// everything else; choosing any other id drops NoSymptomsID.
func (selection SymptomSelection) Toggle(id string) SymptomSelection {
	id = strings.TrimSpace(id)
	if id == "" {
		return selection.clone()
	}
	if id == NoSymptomsID {
		return NewSymptomSelection(NoSymptomsID)
	}

	next := selection.clone()
	delete(next.ids, NoSymptomsID)
	if _, selected := selection.ids[id]; selected {
		delete(next.ids, id)
		return next
	}
	next.ids[id] = struct{}{}
	return next
}

func (selection SymptomSelection) Contains(id string) bool {
	_, ok := selection.ids[id]
	return ok
}

func (selection SymptomSelection) Len() int {
	return len(selection.ids)
}

// IDs returns the members in lexical order.
func (selection SymptomSelection) IDs() []string {
	ids := make([]string, 0, len(selection.ids))
	for id := range selection.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (selection SymptomSelection) MarshalJSON() ([]byte, error) {
	return json.Marshal(selection.IDs())
}

func (selection SymptomSelection) clone() SymptomSelection {
	next := SymptomSelection{ids: make(map[string]struct{}, len(selection.ids)+1)}
	for id := range selection.ids {
		next.ids[id] = struct{}{}
	}
	return next
}

// DiffSelections lists the identifiers present only in after and only in before.
func DiffSelections(before SymptomSelection, after SymptomSelection) (added []string, removed []string) {
	added = make([]string, 0)
	removed = make([]string, 0)
	for _, id := range after.IDs() {
		if !before.Contains(id) {
			added = append(added, id)
		}
	}
	for _, id := range before.IDs() {
		if !after.Contains(id) {
			removed = append(removed, id)
		}
	}
	return added, removed
}
