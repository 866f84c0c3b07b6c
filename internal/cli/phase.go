package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/terraincognita07/pregcare/internal/services"
)

// RunPhaseCommand prints the phase descriptor of the current cycle. rawToday
// overrides the local date when set.
func RunPhaseCommand(out io.Writer, options Options, rawToday string) error {
	sess, err := openSession(options)
	if err != nil {
		return err
	}
	defer sess.close()

	today := sess.today
	if strings.TrimSpace(rawToday) != "" {
		today, err = services.ParseISODate(rawToday)
		if err != nil {
			return fmt.Errorf("invalid --today: %w", err)
		}
	}

	descriptor, err := sess.cycles.CurrentPhase(sess.profile.ID, today)
	if errors.Is(err, services.ErrNoActiveCycle) {
		fmt.Fprintln(out, "Belum ada siklus tercatat.")
		return nil
	}
	if err != nil {
		return err
	}

	FormatPhase(out, descriptor)
	return nil
}

func FormatPhase(out io.Writer, descriptor services.PhaseDescriptor) {
	fmt.Fprintf(out, "Fase: %s (%s)\n", descriptor.Name, descriptor.Phase)
	fmt.Fprintf(out, "Hari ke-%d dari %d (%.0f%%)\n", descriptor.DayNumber, descriptor.TotalDays, descriptor.ProgressPercent)
	if descriptor.DaysToOvulation != nil {
		fmt.Fprintf(out, "Ovulasi: %s\n", formatCountdown(*descriptor.DaysToOvulation))
	}
	if descriptor.DaysToNextPeriod != nil {
		fmt.Fprintf(out, "Menstruasi berikutnya: %s\n", formatCountdown(*descriptor.DaysToNextPeriod))
	}
	fmt.Fprintln(out, descriptor.Description)
}

func formatCountdown(days int) string {
	switch {
	case days > 0:
		return fmt.Sprintf("%d hari lagi", days)
	case days == 0:
		return "hari ini"
	default:
		return fmt.Sprintf("terlambat %d hari", -days)
	}
}
