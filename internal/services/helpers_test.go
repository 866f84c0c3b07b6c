package services

import (
	"time"

	"github.com/terraincognita07/pregcare/internal/models"
)

func mustParseDay(raw string) time.Time {
	parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		panic(err)
	}
	return parsed
}

func dayPtr(raw string) *time.Time {
	value := mustParseDay(raw)
	return &value
}

func makeCycle(id uint, start string, cycleLength int) models.Cycle {
	return models.Cycle{
		ID:          id,
		ProfileID:   1,
		StartDate:   mustParseDay(start),
		CycleLength: cycleLength,
		Phase:       models.PhaseNormal,
	}
}

func boolPtr(value bool) *bool {
	return &value
}
