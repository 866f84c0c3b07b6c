package api

type profileInput struct {
	AverageCycleLength  int `json:"average_cycle_length" validate:"required,min=21,max=40"`
	AveragePeriodLength int `json:"average_period_length" validate:"required,min=1,max=10"`
}

type quickLogInput struct {
	StartDate   string  `json:"start_date" validate:"required,isodate"`
	EndDate     *string `json:"end_date" validate:"omitempty,isodate"`
	CycleLength int     `json:"cycle_length" validate:"omitempty,min=21,max=40"`
	Notes       string  `json:"notes" validate:"max=1000"`
}

type cycleDatesInput struct {
	StartDate string  `json:"start_date" validate:"required,isodate"`
	EndDate   *string `json:"end_date" validate:"omitempty,isodate"`
}

type symptomToggleInput struct {
	SymptomID string `json:"symptom_id" validate:"required,max=64"`
}

type symptomLogInput struct {
	Symptoms []symptomEntryInput `json:"symptoms" validate:"required,min=1,max=32,dive"`
}

type symptomEntryInput struct {
	SymptomID string `json:"symptom_id" validate:"required,max=64"`
	Severity  *int   `json:"severity" validate:"omitempty,min=1,max=10"`
	Notes     string `json:"notes" validate:"max=1000"`
}

type notificationPreferenceInput struct {
	Enabled           *bool `json:"enabled"`
	CycleReminders    *bool `json:"cycle_reminders"`
	FertileAlerts     *bool `json:"fertile_alerts"`
	PeriodPredictions *bool `json:"period_predictions"`
	PeriodLeadDays    *int  `json:"period_lead_days" validate:"omitempty,min=0,max=7"`
	FertileLeadDays   *int  `json:"fertile_lead_days" validate:"omitempty,min=0,max=7"`
}
