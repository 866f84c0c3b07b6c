package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/terraincognita07/pregcare/internal/models"
	"github.com/terraincognita07/pregcare/internal/services"
)

var weekdayHeaders = []string{"Min", "Sen", "Sel", "Rab", "Kam", "Jum", "Sab"}

var phaseMarkers = map[string]string{
	models.PhaseMenstruation: "M",
	models.PhaseFollicular:   "F",
	models.PhaseOvulation:    "O",
	models.PhaseFertile:      "S",
	models.PhaseLuteal:       "L",
	models.PhaseNormal:       ".",
}

// RunCalendarCommand prints the month grid. Zero year or month means the
// current one.
func RunCalendarCommand(out io.Writer, options Options, year int, month int) error {
	sess, err := openSession(options)
	if err != nil {
		return err
	}
	defer sess.close()

	if year == 0 {
		year = sess.today.Year()
	}
	if month == 0 {
		month = int(sess.today.Month())
	}

	cells, err := sess.calendar.MonthGrid(sess.profile.ID, year, month)
	if err != nil {
		return err
	}

	FormatMonthGrid(out, year, month, cells)
	return nil
}

// FormatMonthGrid writes cells as rows of seven under a Sunday-first header.
// Each day carries its phase marker and a star when symptoms were logged.
func FormatMonthGrid(out io.Writer, year int, month int, cells []services.CalendarDayCell) {
	fmt.Fprintf(out, "%04d-%02d\n", year, month)
	for _, header := range weekdayHeaders {
		fmt.Fprintf(out, "%-6s", header)
	}
	fmt.Fprintln(out)

	for start := 0; start < len(cells); start += 7 {
		end := start + 7
		if end > len(cells) {
			end = len(cells)
		}
		row := make([]string, 0, 7)
		for _, cell := range cells[start:end] {
			row = append(row, formatCell(cell))
		}
		fmt.Fprintln(out, strings.TrimRight(strings.Join(row, ""), " "))
	}

	fmt.Fprintln(out, "M=menstruasi F=folikuler O=ovulasi S=subur L=luteal .=normal *=gejala")
}

func formatCell(cell services.CalendarDayCell) string {
	if cell.IsPlaceholder() {
		return strings.Repeat(" ", 6)
	}
	marker := " "
	if cell.PhaseTag != nil {
		if value, ok := phaseMarkers[*cell.PhaseTag]; ok {
			marker = value
		}
	}
	symptoms := " "
	if cell.HasSymptoms {
		symptoms = "*"
	}
	return fmt.Sprintf("%2d%s%s  ", *cell.DayOfMonth, marker, symptoms)
}
