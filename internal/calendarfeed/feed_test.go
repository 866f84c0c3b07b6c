package calendarfeed

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terraincognita07/pregcare/internal/models"
)

func mustParseDay(raw string) time.Time {
	value, err := time.Parse("2006-01-02", raw)
	if err != nil {
		panic(err)
	}
	return value
}

func datePtr(raw string) *time.Time {
	value := mustParseDay(raw)
	return &value
}

func TestRenderWritesPredictedEvents(t *testing.T) {
	t.Parallel()

	cycle := &models.Cycle{
		ID:                 3,
		ProfileID:          1,
		StartDate:          mustParseDay("2026-03-01"),
		CycleLength:        28,
		PeriodLength:       5,
		OvulationDate:      datePtr("2026-03-15"),
		FertileWindowStart: datePtr("2026-03-10"),
		FertileWindowEnd:   datePtr("2026-03-16"),
		NextPeriodDate:     datePtr("2026-03-29"),
	}

	raw, err := Render(cycle, "Kalender Saya", time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	decoded, err := ical.NewDecoder(bytes.NewReader(raw)).Decode()
	require.NoError(t, err)

	calName, err := decoded.Props.Text(propCalName)
	require.NoError(t, err)
	assert.Equal(t, "Kalender Saya", calName)

	events := decoded.Events()
	require.Len(t, events, 3)

	byKind := map[string]ical.Event{}
	for _, event := range events {
		kind, err := event.Props.Text(ical.PropCategories)
		require.NoError(t, err)
		byKind[kind] = event
	}

	fertile := byKind[KindFertileWindow]
	start, err := fertile.DateTimeStart(time.UTC)
	require.NoError(t, err)
	end, err := fertile.DateTimeEnd(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, mustParseDay("2026-03-10"), start)
	assert.Equal(t, mustParseDay("2026-03-17"), end)

	next := byKind[KindNextPeriod]
	start, err = next.DateTimeStart(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, mustParseDay("2026-03-29"), start)

	uid, err := byKind[KindOvulation].Props.Text(ical.PropUID)
	require.NoError(t, err)
	assert.Equal(t, EventUID(*cycle, KindOvulation), uid)
}

func TestBuildFillsMissingPredictions(t *testing.T) {
	t.Parallel()

	cycle := &models.Cycle{ID: 9, ProfileID: 1, StartDate: mustParseDay("2026-01-01"), CycleLength: 30}

	cal, err := Build(cycle, "", time.Now())
	require.NoError(t, err)
	require.Len(t, cal.Events(), 3)
	assert.Nil(t, cycle.OvulationDate, "input cycle must not be mutated")

	for _, event := range cal.Events() {
		kind, err := event.Props.Text(ical.PropCategories)
		require.NoError(t, err)
		if kind != KindOvulation {
			continue
		}
		start, err := event.DateTimeStart(time.UTC)
		require.NoError(t, err)
		assert.Equal(t, mustParseDay("2026-01-17"), start)
	}
}

func TestRenderWithoutCycleKeepsCalendarHeader(t *testing.T) {
	t.Parallel()

	raw, err := Render(nil, "Siklus Saya", time.Now())
	require.NoError(t, err)

	body := string(raw)
	assert.True(t, strings.HasPrefix(body, "BEGIN:VCALENDAR\r\n"))
	assert.True(t, strings.HasSuffix(body, "END:VCALENDAR\r\n"))
	assert.NotContains(t, body, "BEGIN:VEVENT")
	assert.Contains(t, body, "X-WR-CALNAME:Siklus Saya\r\n")
	assert.Contains(t, body, "CALSCALE:GREGORIAN\r\n")
	assert.Contains(t, body, "METHOD:PUBLISH\r\n")
	assert.Contains(t, body, "VERSION:2.0\r\n")
	assert.Contains(t, body, "PRODID:-//PregCare//Cycle Feed//ID\r\n")
	assert.Contains(t, body, "REFRESH-INTERVAL:PT43200S\r\n")
}

func TestEventUIDIsStable(t *testing.T) {
	t.Parallel()

	cycle := models.Cycle{ID: 4, ProfileID: 1}
	assert.Equal(t, EventUID(cycle, KindOvulation), EventUID(cycle, KindOvulation))
	assert.NotEqual(t, EventUID(cycle, KindOvulation), EventUID(cycle, KindNextPeriod))
	assert.NotEqual(t, EventUID(cycle, KindOvulation), EventUID(models.Cycle{ID: 5, ProfileID: 1}, KindOvulation))
}
