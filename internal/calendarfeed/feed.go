// Package calendarfeed renders the predicted dates of the current cycle as an
// iCalendar feed that phone calendars can subscribe to.
package calendarfeed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/terraincognita07/pregcare/internal/models"
	"github.com/terraincognita07/pregcare/internal/services"
)

const (
	ContentType = "text/calendar; charset=utf-8"

	prodID          = "-//PregCare//Cycle Feed//ID"
	propCalName     = "X-WR-CALNAME"
	refreshInterval = 12 * time.Hour

	KindNextPeriod    = "next-period"
	KindOvulation     = "ovulation"
	KindFertileWindow = "fertile-window"
)

var ErrEncodeFeed = errors.New("encode calendar feed")

var summaries = map[string]string{
	KindNextPeriod:    "Perkiraan Menstruasi",
	KindOvulation:     "Perkiraan Ovulasi",
	KindFertileWindow: "Masa Subur",
}

// Build returns a calendar with one all-day event per predicted date of cycle.
// A nil cycle yields a calendar without events.
func Build(cycle *models.Cycle, name string, now time.Time) (*ical.Calendar, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, prodID)
	cal.Props.SetText(ical.PropCalendarScale, "GREGORIAN")
	cal.Props.SetText(ical.PropMethod, "PUBLISH")
	if name != "" {
		cal.Props.SetText(propCalName, name)
	}
	refresh := ical.NewProp(ical.PropRefreshInterval)
	refresh.SetDuration(refreshInterval)
	cal.Props.Set(refresh)

	if cycle == nil || cycle.StartDate.IsZero() {
		return cal, nil
	}

	predicted := *cycle
	if predicted.OvulationDate == nil || predicted.NextPeriodDate == nil ||
		predicted.FertileWindowStart == nil || predicted.FertileWindowEnd == nil {
		services.CalculateCycleData(&predicted, models.DefaultCycleLength, models.DefaultLutealPhaseDays)
	}

	stamp := ical.NewProp(ical.PropDateTimeStamp)
	stamp.SetDateTime(now.UTC())

	events := []*ical.Event{
		newEvent(predicted, KindFertileWindow, *predicted.FertileWindowStart, *predicted.FertileWindowEnd),
		newEvent(predicted, KindOvulation, *predicted.OvulationDate, *predicted.OvulationDate),
		newEvent(predicted, KindNextPeriod, *predicted.NextPeriodDate, *predicted.NextPeriodDate),
	}
	for _, event := range events {
		event.Props.Set(stamp)
		cal.Children = append(cal.Children, event.Component)
	}
	return cal, nil
}

// EventUID is stable for a given cycle and kind so re-subscribing clients
// update events in place.
func EventUID(cycle models.Cycle, kind string) string {
	key := fmt.Sprintf("pregcare:profile:%d:cycle:%d:%s", cycle.ProfileID, cycle.ID, kind)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(key)).String()
}

func newEvent(cycle models.Cycle, kind string, first time.Time, last time.Time) *ical.Event {
	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, EventUID(cycle, kind))
	event.Props.SetText(ical.PropSummary, summaries[kind])
	event.Props.SetText(ical.PropCategories, kind)
	event.Props.SetText(ical.PropTransparency, "TRANSPARENT")

	start := ical.NewProp(ical.PropDateTimeStart)
	start.SetDate(services.CalendarDate(first))
	event.Props.Set(start)

	// DTEND of an all-day event is exclusive.
	end := ical.NewProp(ical.PropDateTimeEnd)
	end.SetDate(services.CalendarDate(last).AddDate(0, 0, 1))
	event.Props.Set(end)

	return event
}

// Encode writes cal to w. The ical encoder refuses a VCALENDAR without
// components, so a calendar without events is written here with the same
// header properties and no children.
func Encode(w io.Writer, cal *ical.Calendar) error {
	if len(cal.Children) == 0 {
		if err := encodeEmpty(w, cal); err != nil {
			return fmt.Errorf("%w: %v", ErrEncodeFeed, err)
		}
		return nil
	}
	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("%w: %v", ErrEncodeFeed, err)
	}
	return nil
}

func encodeEmpty(w io.Writer, cal *ical.Calendar) error {
	var buf bytes.Buffer
	buf.WriteString("BEGIN:" + ical.CompCalendar + "\r\n")

	names := make([]string, 0, len(cal.Props))
	for name := range cal.Props {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, prop := range cal.Props[name] {
			if err := writeProp(&buf, prop); err != nil {
				return err
			}
		}
	}

	buf.WriteString("END:" + ical.CompCalendar + "\r\n")
	_, err := w.Write(buf.Bytes())
	return err
}

func writeProp(buf *bytes.Buffer, prop ical.Prop) error {
	if strings.ContainsAny(prop.Value, "\r\n") {
		return fmt.Errorf("property %s contains a line break", prop.Name)
	}

	buf.WriteString(prop.Name)
	paramNames := make([]string, 0, len(prop.Params))
	for name := range prop.Params {
		paramNames = append(paramNames, name)
	}
	sort.Strings(paramNames)
	for _, name := range paramNames {
		buf.WriteString(";" + name + "=")
		for index, value := range prop.Params[name] {
			if index > 0 {
				buf.WriteString(",")
			}
			if strings.ContainsAny(value, ";:,") {
				value = `"` + value + `"`
			}
			buf.WriteString(value)
		}
	}
	buf.WriteString(":" + prop.Value + "\r\n")
	return nil
}

// Render is Build followed by Encode.
func Render(cycle *models.Cycle, name string, now time.Time) ([]byte, error) {
	cal, err := Build(cycle, name, now)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, cal); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
