package cli

import (
	"fmt"
	"io"
)

// RunAnalyzeCommand regenerates the cycle analysis and prints it.
func RunAnalyzeCommand(out io.Writer, options Options) error {
	sess, err := openSession(options)
	if err != nil {
		return err
	}
	defer sess.close()

	result, err := sess.analyses.Generate(sess.profile.ID, sess.today)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Analisis: %s (keyakinan %s, %d siklus)\n", result.Type, result.Confidence, result.CyclesAnalyzed)
	if result.AverageLength != nil {
		fmt.Fprintf(out, "Rata-rata panjang siklus: %.1f hari\n", *result.AverageLength)
	}
	if result.Variability != nil {
		fmt.Fprintf(out, "Variasi: %.0f hari\n", *result.Variability)
	}
	fmt.Fprintln(out, result.Message)
	for _, recommendation := range result.Recommendations {
		fmt.Fprintf(out, "- %s\n", recommendation)
	}
	return nil
}
