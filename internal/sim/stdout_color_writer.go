// ColorStdoutWriter prints human-friendly, colorized simulation output to STDOUT.
package sim

import (
	"fmt"
	"io"
	"os"
	"sync"
	"text/tabwriter"

	"astromine-sim/internal/catalog"
	"astromine-sim/internal/events"
)

const (
	colorReset   = "\x1b[0m"
	colorRed     = "\x1b[31m"
	colorGreen   = "\x1b[32m"
	colorYellow  = "\x1b[33m"
	colorBlue    = "\x1b[34m"
	colorMagenta = "\x1b[35m"
	colorCyan    = "\x1b[36m"
	colorGray    = "\x1b[90m"
)

// ColorStdoutWriter prints event and snapshot rows using ANSI colors.
type ColorStdoutWriter struct {
	cat  *catalog.Catalog
	out  io.Writer
	once sync.Once
}

// NewColorStdoutWriter creates a ColorStdoutWriter writing to os.Stdout.
func NewColorStdoutWriter(cat *catalog.Catalog) *ColorStdoutWriter {
	return &ColorStdoutWriter{cat: cat, out: os.Stdout}
}

func (w *ColorStdoutWriter) printOverview() {
	if w.cat == nil {
		return
	}

	fmt.Fprintln(w.out, "Process Catalog:")
	tw := tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tLabel\tEnergy\n")
	for _, p := range w.cat.Processes {
		fmt.Fprintf(tw, "%s%s%s\t%s\t%.1f\n", colorCyan, p.ID, colorReset, p.Label, p.EnergyCost)
	}
	tw.Flush()

	fmt.Fprintln(w.out, "\nTradable Products:")
	tw = tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tLabel\tBase Price\n")
	for _, p := range w.cat.Products {
		fmt.Fprintf(tw, "%s%s%s\t%s\t%.2f\n", colorYellow, p.ID, colorReset, p.Label, p.BasePrice)
	}
	tw.Flush()
	fmt.Fprintln(w.out)
}

// Write outputs a single event row in colorized format.
func (w *ColorStdoutWriter) Write(row events.EventRow) error {
	w.once.Do(w.printOverview)
	fmt.Fprintf(w.out, "%s[%s]%s %sship=%s%s %s\n",
		colorGray, row.Time().Format("15:04:05"), colorReset,
		colorBlue, row.ShipID, colorReset,
		row.Message)
	return nil
}

// WriteBatch outputs multiple event rows.
func (w *ColorStdoutWriter) WriteBatch(rows []events.EventRow) error {
	for _, r := range rows {
		_ = w.Write(r)
	}
	return nil
}

// WriteSnapshot prints a one-line ship status summary.
func (w *ColorStdoutWriter) WriteSnapshot(row events.SnapshotRow) error {
	w.once.Do(w.printOverview)
	charging := colorGray + "idle" + colorReset
	if row.Charging {
		charging = colorGreen + "charging" + colorReset
	}
	fmt.Fprintf(w.out, "%s[%s]%s %sSTATUS%s sector=%s credits=%.2f energy=%.1f/%.1f %s targets=%d failures=%d\n",
		colorGray, row.Timestamp.Format("15:04:05"), colorReset,
		colorBlue, colorReset,
		row.SectorID, row.Credits, row.Energy, row.MaxEnergy,
		charging, row.WorldRemaining, row.FailureCount)
	return nil
}

// WriteFailure prints a failure report to STDOUT.
func (w *ColorStdoutWriter) WriteFailure(row events.FailureReportRow) error {
	w.once.Do(w.printOverview)
	fmt.Fprintf(w.out, "%sFAILURE%s reason=%s repairs=%d credits=-%.0f energy=-%.0f",
		colorRed, colorReset, row.Reason, row.RepairCount, row.CreditsPenalty, row.EnergyPenalty)
	if row.HadMaterialShortage {
		fmt.Fprintf(w.out, " %sshortage%s", colorMagenta, colorReset)
	}
	fmt.Fprintln(w.out)
	return nil
}
