package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/terraincognita07/pregcare/internal/services"
)

// RunRolloverCommand performs one rollover outside the scheduler.
func RunRolloverCommand(out io.Writer, options Options) error {
	sess, err := openSession(options)
	if err != nil {
		return err
	}
	defer sess.close()

	scheduler, err := services.NewRolloverScheduler(services.RolloverOptions{
		Location:      sess.options.Location,
		Phases:        sess.cycles,
		Analyses:      sess.analyses,
		Notifications: sess.notify,
		Profiles:      sess.profiles,
		Logger:        sess.options.Logger,
		Now:           sess.options.Now,
	})
	if err != nil {
		return err
	}

	report, err := scheduler.RunOnce()
	fmt.Fprintf(out, "Rollover %s: %d fase diperbarui, %d analisis dibuat, %d notifikasi (%s)\n",
		services.FormatISODate(report.Day), report.PhasesUpdated, report.AnalysesGenerated,
		report.NotificationsCreated, report.Duration.Round(time.Millisecond))
	return err
}
