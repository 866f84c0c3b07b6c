package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/terraincognita07/pregcare/internal/models"
)

var (
	ErrUnknownSymptom      = errors.New("unknown symptom")
	ErrInvalidSymptomRange = errors.New("invalid symptom range")
	ErrLoadSymptomsFailed  = errors.New("load symptoms failed")
	ErrToggleSymptomFailed = errors.New("toggle symptom failed")
	ErrClearSymptomsFailed = errors.New("clear symptoms failed")
	ErrLogSymptomsFailed   = errors.New("log symptoms failed")

	ErrInvalidSymptomSeverity = errors.New("invalid symptom severity")
)

const (
	maxSymptomRangeDays = 366

	MinSymptomSeverity = 1
	MaxSymptomSeverity = 10
)

// SymptomEntry is one symptom with its details for LogSymptoms.
type SymptomEntry struct {
	SymptomID string
	Severity  *int
	Notes     string
}

type SymptomRepository interface {
	ListByProfileRange(profileID uint, from time.Time, to time.Time) ([]models.Symptom, error)
	MutateDay(
		profileID uint,
		dayStart time.Time,
		dayEnd time.Time,
		mutate func(existing []models.Symptom) ([]models.Symptom, []uint, error),
	) error
	DeleteByProfileRange(profileID uint, from time.Time, to time.Time) (int64, error)
}

type SymptomService struct {
	symptoms SymptomRepository
	catalog  []models.SymptomDefinition
	byID     map[string]models.SymptomDefinition

	// writeMu keeps read-modify-write updates of a day in arrival order.
	writeMu sync.Mutex
}

func NewSymptomService(symptoms SymptomRepository, catalog []models.SymptomDefinition) *SymptomService {
	if len(catalog) == 0 {
		catalog = models.DefaultSymptomCatalog()
	}
	byID := make(map[string]models.SymptomDefinition, len(catalog))
	for _, definition := range catalog {
		byID[definition.ID] = definition
	}
	return &SymptomService{
		symptoms: symptoms,
		catalog:  catalog,
		byID:     byID,
	}
}

func (service *SymptomService) Catalog() []models.SymptomDefinition {
	catalog := make([]models.SymptomDefinition, len(service.catalog))
	copy(catalog, service.catalog)
	return catalog
}

func (service *SymptomService) Lookup(symptomID string) (models.SymptomDefinition, bool) {
	definition, ok := service.byID[strings.TrimSpace(symptomID)]
	return definition, ok
}

func (service *SymptomService) SelectionForDate(profileID uint, day time.Time) (SymptomSelection, error) {
	dayStart, dayEnd := StorageDayRange(day)
	rows, err := service.symptoms.ListByProfileRange(profileID, dayStart, dayEnd)
	if err != nil {
		return SymptomSelection{}, fmt.Errorf("%w: %v", ErrLoadSymptomsFailed, err)
	}
	return selectionFromRows(rows), nil
}

// ToggleForDate applies SymptomSelection.Toggle to the stored selection of day
// and persists only the difference.
func (service *SymptomService) ToggleForDate(profileID uint, day time.Time, symptomID string) (SymptomSelection, error) {
	symptomID = strings.TrimSpace(symptomID)
	definition, ok := service.byID[symptomID]
	if !ok {
		return SymptomSelection{}, ErrUnknownSymptom
	}

	service.writeMu.Lock()
	defer service.writeMu.Unlock()

	dayStart, dayEnd := StorageDayRange(day)
	var result SymptomSelection
	err := service.symptoms.MutateDay(profileID, dayStart, dayEnd, func(existing []models.Symptom) ([]models.Symptom, []uint, error) {
		before := selectionFromRows(existing)
		after := before.Toggle(definition.ID)
		added, removed := DiffSelections(before, after)

		create := make([]models.Symptom, 0, len(added))
		for _, id := range added {
			create = append(create, service.newRow(profileID, dayStart, SymptomEntry{SymptomID: id}))
		}

		removedSet := make(map[string]struct{}, len(removed))
		for _, id := range removed {
			removedSet[id] = struct{}{}
		}
		deleteIDs := make([]uint, 0, len(removed))
		for _, row := range existing {
			if _, drop := removedSet[row.SymptomType]; drop {
				deleteIDs = append(deleteIDs, row.ID)
			}
		}

		result = after
		return create, deleteIDs, nil
	})
	if err != nil {
		return SymptomSelection{}, fmt.Errorf("%w: %v", ErrToggleSymptomFailed, err)
	}
	return result, nil
}

// LogSymptoms records entries on day in one transaction and returns the rows
// stored for day afterwards. Entries join the stored selection in order with
// the same NoSymptomsID exclusivity as Toggle; entries for symptoms already
// stored replace their severity and notes.
func (service *SymptomService) LogSymptoms(profileID uint, day time.Time, entries []SymptomEntry) ([]models.Symptom, error) {
	details := make(map[string]SymptomEntry, len(entries))
	order := make([]string, 0, len(entries))
	for _, entry := range entries {
		entry.SymptomID = strings.TrimSpace(entry.SymptomID)
		if _, ok := service.byID[entry.SymptomID]; !ok {
			return nil, ErrUnknownSymptom
		}
		if entry.Severity != nil && (*entry.Severity < MinSymptomSeverity || *entry.Severity > MaxSymptomSeverity) {
			return nil, ErrInvalidSymptomSeverity
		}
		entry.Notes = strings.TrimSpace(entry.Notes)
		details[entry.SymptomID] = entry
		order = append(order, entry.SymptomID)
	}

	service.writeMu.Lock()
	defer service.writeMu.Unlock()

	dayStart, dayEnd := StorageDayRange(day)
	err := service.symptoms.MutateDay(profileID, dayStart, dayEnd, func(existing []models.Symptom) ([]models.Symptom, []uint, error) {
		selection := selectionFromRows(existing)
		for _, id := range order {
			if !selection.Contains(id) {
				selection = selection.Toggle(id)
			}
		}

		stored := make(map[string]struct{}, len(existing))
		create := make([]models.Symptom, 0, len(order))
		deleteIDs := make([]uint, 0)
		for _, row := range existing {
			stored[row.SymptomType] = struct{}{}
			entry, logged := details[row.SymptomType]
			switch {
			case !selection.Contains(row.SymptomType):
				deleteIDs = append(deleteIDs, row.ID)
			case logged:
				deleteIDs = append(deleteIDs, row.ID)
				create = append(create, service.newRow(profileID, dayStart, entry))
			}
		}
		for _, id := range selection.IDs() {
			if _, ok := stored[id]; ok {
				continue
			}
			create = append(create, service.newRow(profileID, dayStart, details[id]))
		}
		return create, deleteIDs, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLogSymptomsFailed, err)
	}

	rows, err := service.symptoms.ListByProfileRange(profileID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadSymptomsFailed, err)
	}
	return rows, nil
}

func (service *SymptomService) ClearDate(profileID uint, day time.Time) (int64, error) {
	dayStart, dayEnd := StorageDayRange(day)
	deleted, err := service.symptoms.DeleteByProfileRange(profileID, dayStart, dayEnd)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrClearSymptomsFailed, err)
	}
	return deleted, nil
}

// ListRange returns the rows recorded between from and to, both inclusive.
func (service *SymptomService) ListRange(profileID uint, from time.Time, to time.Time) ([]models.Symptom, error) {
	fromDay := CalendarDate(from)
	toDay := CalendarDate(to)
	if toDay.Before(fromDay) || DaysBetween(fromDay, toDay) >= maxSymptomRangeDays {
		return nil, ErrInvalidSymptomRange
	}

	rows, err := service.symptoms.ListByProfileRange(profileID, fromDay, toDay.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadSymptomsFailed, err)
	}
	return rows, nil
}

func (service *SymptomService) newRow(profileID uint, day time.Time, entry SymptomEntry) models.Symptom {
	category := models.SymptomCategoryOther
	if known, ok := service.byID[entry.SymptomID]; ok {
		category = known.Category
	}
	row := models.Symptom{
		ProfileID:   profileID,
		Date:        day,
		SymptomType: entry.SymptomID,
		Category:    category,
		Notes:       entry.Notes,
	}
	if entry.Severity != nil {
		severity := *entry.Severity
		row.Severity = &severity
	}
	return row
}

func selectionFromRows(rows []models.Symptom) SymptomSelection {
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.SymptomType)
	}
	return NewSymptomSelection(ids...)
}
