package api

import (
	"time"

	"github.com/terraincognita07/pregcare/internal/models"
	"github.com/terraincognita07/pregcare/internal/services"
)

type profileView struct {
	ID                  uint   `json:"id"`
	Name                string `json:"name"`
	AverageCycleLength  int    `json:"average_cycle_length"`
	AveragePeriodLength int    `json:"average_period_length"`
}

type cycleView struct {
	ID                 uint    `json:"id"`
	StartDate          string  `json:"start_date"`
	EndDate            *string `json:"end_date"`
	CycleLength        int     `json:"cycle_length"`
	PeriodLength       int     `json:"period_length"`
	Phase              string  `json:"phase"`
	OvulationDate      *string `json:"ovulation_date"`
	FertileWindowStart *string `json:"fertile_window_start"`
	FertileWindowEnd   *string `json:"fertile_window_end"`
	NextPeriodDate     *string `json:"next_period_date"`
	IsCurrent          bool    `json:"is_current"`
	Notes              string  `json:"notes"`
}

type symptomView struct {
	ID          uint   `json:"id"`
	Date        string `json:"date"`
	SymptomType string `json:"symptom_type"`
	Category    string `json:"category"`
	Severity    *int   `json:"severity"`
	Notes       string `json:"notes"`
}

type selectionView struct {
	Date      string                    `json:"date"`
	Selection services.SymptomSelection `json:"selection"`
}

type calendarView struct {
	Year         int                        `json:"year"`
	Month        int                        `json:"month"`
	DaysInMonth  int                        `json:"days_in_month"`
	FirstWeekday int                        `json:"first_weekday"`
	Cells        []services.CalendarDayCell `json:"cells"`
}

type analysisView struct {
	services.CycleAnalysisResult
	AnalysisDate string `json:"analysis_date"`
}

type notificationView struct {
	ID        uint              `json:"id"`
	Category  string            `json:"category"`
	Priority  string            `json:"priority"`
	Subject   string            `json:"subject"`
	Body      string            `json:"body"`
	Status    string            `json:"status"`
	IsRead    bool              `json:"is_read"`
	Metadata  map[string]string `json:"metadata"`
	SentAt    *time.Time        `json:"sent_at"`
	ReadAt    *time.Time        `json:"read_at"`
	CreatedAt time.Time         `json:"created_at"`
}

type notificationListView struct {
	Notifications []notificationView `json:"notifications"`
	UnreadCount   int64              `json:"unread_count"`
}

type notificationPreferenceView struct {
	Enabled           bool `json:"enabled"`
	CycleReminders    bool `json:"cycle_reminders"`
	FertileAlerts     bool `json:"fertile_alerts"`
	PeriodPredictions bool `json:"period_predictions"`
	PeriodLeadDays    int  `json:"period_lead_days"`
	FertileLeadDays   int  `json:"fertile_lead_days"`
}

func newProfileView(profile models.Profile) profileView {
	return profileView{
		ID:                  profile.ID,
		Name:                profile.Name,
		AverageCycleLength:  profile.AverageCycleLength,
		AveragePeriodLength: profile.AveragePeriodLength,
	}
}

func newCycleView(cycle models.Cycle) cycleView {
	return cycleView{
		ID:                 cycle.ID,
		StartDate:          services.FormatISODate(cycle.StartDate),
		EndDate:            formatOptionalDate(cycle.EndDate),
		CycleLength:        cycle.CycleLength,
		PeriodLength:       cycle.PeriodLength,
		Phase:              services.NormalizePhase(cycle.Phase),
		OvulationDate:      formatOptionalDate(cycle.OvulationDate),
		FertileWindowStart: formatOptionalDate(cycle.FertileWindowStart),
		FertileWindowEnd:   formatOptionalDate(cycle.FertileWindowEnd),
		NextPeriodDate:     formatOptionalDate(cycle.NextPeriodDate),
		IsCurrent:          cycle.IsCurrent,
		Notes:              cycle.Notes,
	}
}

func newCycleViews(cycles []models.Cycle) []cycleView {
	views := make([]cycleView, 0, len(cycles))
	for _, cycle := range cycles {
		views = append(views, newCycleView(cycle))
	}
	return views
}

func newSymptomViews(rows []models.Symptom) []symptomView {
	views := make([]symptomView, 0, len(rows))
	for _, row := range rows {
		views = append(views, symptomView{
			ID:          row.ID,
			Date:        services.FormatISODate(row.Date),
			SymptomType: row.SymptomType,
			Category:    row.Category,
			Severity:    row.Severity,
			Notes:       row.Notes,
		})
	}
	return views
}

func newAnalysisView(result services.CycleAnalysisResult) analysisView {
	view := analysisView{CycleAnalysisResult: result}
	if !result.AnalysisDate.IsZero() {
		view.AnalysisDate = services.FormatISODate(result.AnalysisDate)
	}
	return view
}

func newNotificationView(notification models.Notification) notificationView {
	metadata := notification.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}
	return notificationView{
		ID:        notification.ID,
		Category:  notification.Category,
		Priority:  notification.Priority,
		Subject:   notification.Subject,
		Body:      notification.Body,
		Status:    notification.Status,
		IsRead:    notification.IsRead(),
		Metadata:  metadata,
		SentAt:    notification.SentAt,
		ReadAt:    notification.ReadAt,
		CreatedAt: notification.CreatedAt,
	}
}

func newNotificationViews(notifications []models.Notification) []notificationView {
	views := make([]notificationView, 0, len(notifications))
	for _, notification := range notifications {
		views = append(views, newNotificationView(notification))
	}
	return views
}

func newNotificationPreferenceView(preference models.NotificationPreference) notificationPreferenceView {
	return notificationPreferenceView{
		Enabled:           preference.Enabled,
		CycleReminders:    preference.CycleReminders,
		FertileAlerts:     preference.FertileAlerts,
		PeriodPredictions: preference.PeriodPredictions,
		PeriodLeadDays:    preference.PeriodLeadDays,
		FertileLeadDays:   preference.FertileLeadDays,
	}
}
