package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/terraincognita07/pregcare/internal/models"
)

const (
	analysisWindowCycles = 6
	minPlausibleGapDays  = 15
	maxPlausibleGapDays  = 45
	shortCycleThreshold  = 21
	longCycleThreshold   = 35
	irregularVariability = 7
)

// CycleAnalysisResult summarises the recent cycle history. AverageLength and
// Variability are nil when there was not enough data.
type CycleAnalysisResult struct {
	Type            string    `json:"type"`
	Message         string    `json:"message"`
	Recommendations []string  `json:"recommendations"`
	PotentialCauses []string  `json:"potential_causes"`
	AverageLength   *float64  `json:"average_length"`
	Variability     *float64  `json:"variability"`
	CyclesAnalyzed  int       `json:"cycles_analyzed"`
	Confidence      string    `json:"confidence"`
	AnalysisDate    time.Time `json:"analysis_date"`
}

func (result CycleAnalysisResult) HasData() bool {
	return result.Type != models.AnalysisInsufficientData
}

// AnalyzeCycles classifies the gaps between the last six cycle starts.
func AnalyzeCycles(cycles []models.Cycle) CycleAnalysisResult {
	recent := make([]models.Cycle, 0, len(cycles))
	recent = append(recent, cycles...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].StartDate.After(recent[j].StartDate)
	})
	if len(recent) > analysisWindowCycles {
		recent = recent[:analysisWindowCycles]
	}

	if len(recent) < 2 {
		return CycleAnalysisResult{
			Type:    models.AnalysisInsufficientData,
			Message: "Diperlukan minimal 2 siklus untuk analisis. Terus catat siklus Anda untuk mendapatkan insight yang lebih baik.",
			Recommendations: []string{
				"Catat setiap siklus menstruasi secara konsisten",
				"Perhatikan pola gejala yang Anda alami",
				"Catat tanggal mulai dan akhir menstruasi dengan akurat",
			},
			PotentialCauses: []string{},
			Confidence:      models.ConfidenceLow,
		}
	}

	lengths := make([]int, 0, len(recent)-1)
	for index := 0; index < len(recent)-1; index++ {
		gap := DaysBetween(recent[index+1].StartDate, recent[index].StartDate)
		if gap >= minPlausibleGapDays && gap <= maxPlausibleGapDays {
			lengths = append(lengths, gap)
		}
	}

	if len(lengths) == 0 {
		return CycleAnalysisResult{
			Type:            models.AnalysisInsufficientData,
			Message:         "Data siklus belum cukup untuk analisis akurat.",
			Recommendations: []string{"Lanjutkan pencatatan siklus"},
			PotentialCauses: []string{},
			Confidence:      models.ConfidenceLow,
		}
	}

	average, variability := lengthStats(lengths)
	result := CycleAnalysisResult{
		AverageLength:   &average,
		Variability:     &variability,
		CyclesAnalyzed:  len(lengths),
		Confidence:      analysisConfidence(len(lengths)),
		PotentialCauses: []string{},
	}

	switch {
	case average < shortCycleThreshold:
		result.Type = models.AnalysisShort
		result.Message = fmt.Sprintf("Siklus Anda cenderung pendek dengan rata-rata %.0f hari. Rentang normal adalah 21-35 hari.", average)
		result.PotentialCauses = []string{
			"Stres berlebihan",
			"Gangguan hormon tiroid",
			"Perimenopause",
			"Kondisi kesehatan tertentu",
		}
		result.Recommendations = []string{
			"Konsultasikan dengan dokter kandungan untuk evaluasi",
			"Kelola stres dengan teknik relaksasi",
			"Perhatikan pola tidur dan nutrisi",
			"Catat gejala lain yang menyertai",
		}
	case average > longCycleThreshold:
		result.Type = models.AnalysisLong
		result.Message = fmt.Sprintf("Siklus Anda cenderung panjang dengan rata-rata %.0f hari. Rentang normal adalah 21-35 hari.", average)
		result.PotentialCauses = []string{
			"Sindrom ovarium polikistik (PCOS)",
			"Gangguan hormon tiroid",
			"Stres berkepanjangan",
			"Perubahan berat badan signifikan",
		}
		result.Recommendations = []string{
			"Konsultasikan dengan dokter kandungan",
			"Jaga berat badan ideal",
			"Olahraga teratur dengan intensitas sedang",
			"Perhatikan pola makan seimbang",
		}
	case variability > irregularVariability:
		result.Type = models.AnalysisIrregular
		result.Message = fmt.Sprintf("Siklus Anda tidak teratur dengan variasi hingga %.0f hari antar siklus.", variability)
		result.PotentialCauses = []string{
			"Stres",
			"Perubahan berat badan",
			"Gangguan hormonal",
			"Efek samping obat atau kontrasepsi",
		}
		result.Recommendations = []string{
			"Catat siklus lebih detail untuk pola",
			"Evaluasi faktor gaya hidup",
			"Konsultasi jika berlanjut lebih dari 3 bulan",
			"Kelola stres dengan baik",
		}
	default:
		result.Type = models.AnalysisNormal
		result.Message = fmt.Sprintf("Siklus Anda teratur dengan rata-rata %.0f hari dalam rentang normal (21-35 hari).", average)
		result.Recommendations = []string{
			"Terus pantau siklus secara konsisten",
			"Jaga pola hidup sehat",
			"Perhatikan perubahan gejala",
			"Catat aktivitas yang mempengaruhi siklus",
		}
	}

	return result
}

// ToModel converts a result with data into its persisted form.
func (result CycleAnalysisResult) ToModel(profileID uint) models.CycleAnalysis {
	analysis := models.CycleAnalysis{
		ProfileID:       profileID,
		AnalysisDate:    CalendarDate(result.AnalysisDate),
		AnalysisType:    result.Type,
		Message:         result.Message,
		Recommendations: result.Recommendations,
		PotentialCauses: result.PotentialCauses,
		CyclesAnalyzed:  result.CyclesAnalyzed,
		ConfidenceLevel: result.Confidence,
	}
	if result.AverageLength != nil {
		analysis.AverageCycleLength = *result.AverageLength
	}
	if result.Variability != nil {
		analysis.CycleVariability = *result.Variability
	}
	return analysis
}

func analysisResultFromModel(analysis models.CycleAnalysis) CycleAnalysisResult {
	average := analysis.AverageCycleLength
	variability := analysis.CycleVariability
	result := CycleAnalysisResult{
		Type:            analysis.AnalysisType,
		Message:         analysis.Message,
		Recommendations: analysis.Recommendations,
		PotentialCauses: analysis.PotentialCauses,
		AverageLength:   &average,
		Variability:     &variability,
		CyclesAnalyzed:  analysis.CyclesAnalyzed,
		Confidence:      analysis.ConfidenceLevel,
		AnalysisDate:    analysis.AnalysisDate,
	}
	if result.Recommendations == nil {
		result.Recommendations = []string{}
	}
	if result.PotentialCauses == nil {
		result.PotentialCauses = []string{}
	}
	return result
}

func lengthStats(lengths []int) (float64, float64) {
	total := 0
	minimum, maximum := lengths[0], lengths[0]
	for _, length := range lengths {
		total += length
		if length < minimum {
			minimum = length
		}
		if length > maximum {
			maximum = length
		}
	}
	return float64(total) / float64(len(lengths)), float64(maximum - minimum)
}

func analysisConfidence(samples int) string {
	switch {
	case samples >= 5:
		return models.ConfidenceHigh
	case samples >= 3:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}
