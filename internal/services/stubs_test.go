package services

import (
	"sort"
	"sync"
	"time"

	"github.com/terraincognita07/pregcare/internal/models"
)

type stubProfileRepo struct {
	profiles  map[uint]*models.Profile
	updateErr error
	findErr   error
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{profiles: map[uint]*models.Profile{
		1: {ID: 1, Name: models.DefaultProfileName, AverageCycleLength: 28, AveragePeriodLength: 5},
	}}
}

func (stub *stubProfileRepo) EnsureDefault() (models.Profile, error) {
	return *stub.profiles[1], nil
}

func (stub *stubProfileRepo) FindByID(profileID uint) (*models.Profile, error) {
	if stub.findErr != nil {
		return nil, stub.findErr
	}
	profile, ok := stub.profiles[profileID]
	if !ok {
		return nil, nil
	}
	copyProfile := *profile
	return &copyProfile, nil
}

func (stub *stubProfileRepo) ListAll() ([]models.Profile, error) {
	profiles := make([]models.Profile, 0, len(stub.profiles))
	for _, profile := range stub.profiles {
		profiles = append(profiles, *profile)
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].ID < profiles[j].ID })
	return profiles, nil
}

func (stub *stubProfileRepo) UpdateByID(profileID uint, updates map[string]any) error {
	if stub.updateErr != nil {
		return stub.updateErr
	}
	profile := stub.profiles[profileID]
	if value, ok := updates["average_cycle_length"].(int); ok {
		profile.AverageCycleLength = value
	}
	if value, ok := updates["average_period_length"].(int); ok {
		profile.AveragePeriodLength = value
	}
	return nil
}

type stubCycleRepo struct {
	cycles    []models.Cycle
	nextID    uint
	createErr error
	listErr   error
	phaseSets map[uint]string
}

func (stub *stubCycleRepo) ListByProfile(profileID uint) ([]models.Cycle, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	result := make([]models.Cycle, 0)
	for _, cycle := range stub.cycles {
		if cycle.ProfileID == profileID {
			result = append(result, cycle)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartDate.After(result[j].StartDate) })
	return result, nil
}

func (stub *stubCycleRepo) FindCurrent(profileID uint) (*models.Cycle, error) {
	for index := range stub.cycles {
		if stub.cycles[index].ProfileID == profileID && stub.cycles[index].IsCurrent {
			cycle := stub.cycles[index]
			return &cycle, nil
		}
	}
	return nil, nil
}

func (stub *stubCycleRepo) FindByIDForProfile(cycleID uint, profileID uint) (*models.Cycle, error) {
	for index := range stub.cycles {
		if stub.cycles[index].ID == cycleID && stub.cycles[index].ProfileID == profileID {
			cycle := stub.cycles[index]
			return &cycle, nil
		}
	}
	return nil, nil
}

func (stub *stubCycleRepo) ListCurrent() ([]models.Cycle, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	result := make([]models.Cycle, 0)
	for _, cycle := range stub.cycles {
		if cycle.IsCurrent {
			result = append(result, cycle)
		}
	}
	return result, nil
}

func (stub *stubCycleRepo) CreateCurrent(cycle *models.Cycle) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	for index := range stub.cycles {
		if stub.cycles[index].ProfileID == cycle.ProfileID {
			stub.cycles[index].IsCurrent = false
		}
	}
	stub.nextID++
	cycle.ID = stub.nextID
	cycle.IsCurrent = true
	stub.cycles = append(stub.cycles, *cycle)
	return nil
}

func (stub *stubCycleRepo) Save(cycle *models.Cycle) error {
	for index := range stub.cycles {
		if stub.cycles[index].ID == cycle.ID {
			stub.cycles[index] = *cycle
			return nil
		}
	}
	stub.cycles = append(stub.cycles, *cycle)
	return nil
}

func (stub *stubCycleRepo) UpdatePhase(cycleID uint, phase string) error {
	if stub.phaseSets == nil {
		stub.phaseSets = map[uint]string{}
	}
	stub.phaseSets[cycleID] = phase
	for index := range stub.cycles {
		if stub.cycles[index].ID == cycleID {
			stub.cycles[index].Phase = phase
		}
	}
	return nil
}

type stubSymptomRepo struct {
	mu     sync.Mutex
	rows   []models.Symptom
	nextID uint
}

func (stub *stubSymptomRepo) ListByProfileRange(profileID uint, from time.Time, to time.Time) ([]models.Symptom, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	return stub.listLocked(profileID, from, to), nil
}

func (stub *stubSymptomRepo) MutateDay(
	profileID uint,
	dayStart time.Time,
	dayEnd time.Time,
	mutate func(existing []models.Symptom) ([]models.Symptom, []uint, error),
) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()

	create, deleteIDs, err := mutate(stub.listLocked(profileID, dayStart, dayEnd))
	if err != nil {
		return err
	}
	drop := make(map[uint]struct{}, len(deleteIDs))
	for _, id := range deleteIDs {
		drop[id] = struct{}{}
	}
	kept := stub.rows[:0]
	for _, row := range stub.rows {
		if _, ok := drop[row.ID]; !ok {
			kept = append(kept, row)
		}
	}
	stub.rows = kept
	for _, row := range create {
		stub.nextID++
		row.ID = stub.nextID
		stub.rows = append(stub.rows, row)
	}
	return nil
}

func (stub *stubSymptomRepo) DeleteByProfileRange(profileID uint, from time.Time, to time.Time) (int64, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()

	kept := stub.rows[:0]
	var deleted int64
	for _, row := range stub.rows {
		if row.ProfileID == profileID && !row.Date.Before(from) && row.Date.Before(to) {
			deleted++
			continue
		}
		kept = append(kept, row)
	}
	stub.rows = kept
	return deleted, nil
}

func (stub *stubSymptomRepo) listLocked(profileID uint, from time.Time, to time.Time) []models.Symptom {
	result := make([]models.Symptom, 0)
	for _, row := range stub.rows {
		if row.ProfileID == profileID && !row.Date.Before(from) && row.Date.Before(to) {
			result = append(result, row)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date.Equal(result[j].Date) {
			return result[i].SymptomType < result[j].SymptomType
		}
		return result[i].Date.Before(result[j].Date)
	})
	return result
}

type stubAnalysisRepo struct {
	created []models.CycleAnalysis
}

func (stub *stubAnalysisRepo) SaveForDate(analysis *models.CycleAnalysis) error {
	for index := range stub.created {
		if stub.created[index].ProfileID == analysis.ProfileID && stub.created[index].AnalysisDate.Equal(analysis.AnalysisDate) {
			analysis.ID = stub.created[index].ID
			stub.created[index] = *analysis
			return nil
		}
	}
	analysis.ID = uint(len(stub.created) + 1)
	stub.created = append(stub.created, *analysis)
	return nil
}

func (stub *stubAnalysisRepo) LatestByProfile(profileID uint) (*models.CycleAnalysis, error) {
	for index := len(stub.created) - 1; index >= 0; index-- {
		if stub.created[index].ProfileID == profileID {
			analysis := stub.created[index]
			return &analysis, nil
		}
	}
	return nil, nil
}

type stubNotificationRepo struct {
	rows        []models.Notification
	preferences map[uint]models.NotificationPreference
	createErr   error
}

func newStubNotificationRepo() *stubNotificationRepo {
	return &stubNotificationRepo{preferences: map[uint]models.NotificationPreference{}}
}

func (stub *stubNotificationRepo) CreateIfAbsent(notification *models.Notification) (bool, error) {
	if stub.createErr != nil {
		return false, stub.createErr
	}
	for _, row := range stub.rows {
		if row.ProfileID == notification.ProfileID && row.DedupeKey == notification.DedupeKey {
			return false, nil
		}
	}
	notification.ID = uint(len(stub.rows) + 1)
	stub.rows = append(stub.rows, *notification)
	return true, nil
}

func (stub *stubNotificationRepo) ListByProfile(profileID uint, status string, limit int) ([]models.Notification, error) {
	result := make([]models.Notification, 0)
	for index := len(stub.rows) - 1; index >= 0; index-- {
		row := stub.rows[index]
		if row.ProfileID != profileID || (status != "" && row.Status != status) {
			continue
		}
		result = append(result, row)
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result, nil
}

func (stub *stubNotificationRepo) CountByStatus(profileID uint, status string) (int64, error) {
	var count int64
	for _, row := range stub.rows {
		if row.ProfileID == profileID && row.Status == status {
			count++
		}
	}
	return count, nil
}

func (stub *stubNotificationRepo) FindByIDForProfile(notificationID uint, profileID uint) (*models.Notification, error) {
	for _, row := range stub.rows {
		if row.ID == notificationID && row.ProfileID == profileID {
			found := row
			return &found, nil
		}
	}
	return nil, nil
}

func (stub *stubNotificationRepo) MarkRead(profileID uint, notificationID uint, at time.Time) error {
	for index := range stub.rows {
		row := &stub.rows[index]
		if row.ID == notificationID && row.ProfileID == profileID && !row.IsRead() {
			row.Status = models.NotificationStatusRead
			row.ReadAt = &at
		}
	}
	return nil
}

func (stub *stubNotificationRepo) MarkAllRead(profileID uint, at time.Time) (int64, error) {
	var updated int64
	for index := range stub.rows {
		row := &stub.rows[index]
		if row.ProfileID == profileID && !row.IsRead() {
			row.Status = models.NotificationStatusRead
			row.ReadAt = &at
			updated++
		}
	}
	return updated, nil
}

func (stub *stubNotificationRepo) EnsurePreference(defaults models.NotificationPreference) (models.NotificationPreference, error) {
	if preference, ok := stub.preferences[defaults.ProfileID]; ok {
		return preference, nil
	}
	stub.preferences[defaults.ProfileID] = defaults
	return defaults, nil
}

func (stub *stubNotificationRepo) UpdatePreference(profileID uint, updates map[string]any) error {
	preference := stub.preferences[profileID]
	for column, value := range updates {
		switch column {
		case "enabled":
			preference.Enabled = value.(bool)
		case "cycle_reminders":
			preference.CycleReminders = value.(bool)
		case "fertile_alerts":
			preference.FertileAlerts = value.(bool)
		case "period_predictions":
			preference.PeriodPredictions = value.(bool)
		case "period_lead_days":
			preference.PeriodLeadDays = value.(int)
		case "fertile_lead_days":
			preference.FertileLeadDays = value.(int)
		}
	}
	stub.preferences[profileID] = preference
	return nil
}
