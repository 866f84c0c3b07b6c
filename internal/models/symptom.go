package models

import "time"

const (
	SymptomCategoryPhysical = "physical"
	SymptomCategoryMood     = "mood"
	SymptomCategoryFlow     = "flow"
	SymptomCategoryOther    = "other"
	SymptomCategoryNone     = "none"
)

// Symptom is a single symptom identifier recorded for a calendar date.
type Symptom struct {
	ID          uint      `gorm:"primaryKey"`
	ProfileID   uint      `gorm:"not null;uniqueIndex:uidx_symptom_profile_date_type"`
	Date        time.Time `gorm:"type:date;not null;uniqueIndex:uidx_symptom_profile_date_type"`
	SymptomType string    `gorm:"not null;uniqueIndex:uidx_symptom_profile_date_type"`
	Category    string    `gorm:"not null;default:physical"`
	Severity    *int
	Notes       string
	CreatedAt   time.Time
}

type SymptomDefinition struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// DefaultSymptomCatalog lists the tracker symptoms followed by the daily
// check-in symptoms. Both share the NoSymptoms entry at the end.
func DefaultSymptomCatalog() []SymptomDefinition {
	return []SymptomDefinition{
		{ID: "cramps", Name: "Kram Perut", Category: SymptomCategoryPhysical},
		{ID: "headache", Name: "Sakit Kepala", Category: SymptomCategoryPhysical},
		{ID: "backpain", Name: "Sakit Punggung", Category: SymptomCategoryPhysical},
		{ID: "bloating", Name: "Kembung", Category: SymptomCategoryPhysical},
		{ID: "fatigue", Name: "Kelelahan", Category: SymptomCategoryPhysical},
		{ID: "breast_tender", Name: "Payudara Nyeri", Category: SymptomCategoryPhysical},
		{ID: "acne", Name: "Jerawat", Category: SymptomCategoryPhysical},
		{ID: "nausea", Name: "Mual", Category: SymptomCategoryPhysical},
		{ID: "dizziness", Name: "Pusing", Category: SymptomCategoryPhysical},
		{ID: "happy", Name: "Bahagia", Category: SymptomCategoryMood},
		{ID: "sad", Name: "Sedih", Category: SymptomCategoryMood},
		{ID: "irritable", Name: "Mudah Tersinggung", Category: SymptomCategoryMood},
		{ID: "anxious", Name: "Cemas", Category: SymptomCategoryMood},
		{ID: "mood_swings", Name: "Mood Swing", Category: SymptomCategoryMood},
		{ID: "energetic", Name: "Berenergi", Category: SymptomCategoryMood},
		{ID: "cravings", Name: "Ngidam Makanan", Category: SymptomCategoryOther},
		{ID: "insomnia", Name: "Susah Tidur", Category: SymptomCategoryOther},
		{ID: "heavy_flow", Name: "Aliran Deras", Category: SymptomCategoryFlow},
		{ID: "medium_flow", Name: "Aliran Sedang", Category: SymptomCategoryFlow},
		{ID: "light_flow", Name: "Aliran Ringan", Category: SymptomCategoryFlow},
		{ID: "spotting", Name: "Flek", Category: SymptomCategoryFlow},
		{ID: "kram-perut", Name: "Kram Perut", Category: SymptomCategoryPhysical},
		{ID: "mual", Name: "Mual", Category: SymptomCategoryPhysical},
		{ID: "pusing", Name: "Pusing", Category: SymptomCategoryPhysical},
		{ID: "nyeri-payudara", Name: "Nyeri Payudara", Category: SymptomCategoryPhysical},
		{ID: "kelelahan", Name: "Kelelahan", Category: SymptomCategoryPhysical},
		{ID: "perubahan-mood", Name: "Perubahan Mood", Category: SymptomCategoryMood},
		{ID: "susah-tidur", Name: "Susah Tidur", Category: SymptomCategoryPhysical},
		{ID: "tidak-ada", Name: "Tidak Ada Gejala", Category: SymptomCategoryNone},
	}
}
