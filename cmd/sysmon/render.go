package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/ja7ad/sysmon/pkg/monitor"
	"github.com/ja7ad/sysmon/pkg/process"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	warnColor    = color.New(color.FgYellow)
	failColor    = color.New(color.FgRed)
	successColor = color.New(color.FgGreen)
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func renderReport(w io.Writer, rep monitor.Report) {
	headerColor.Fprintf(w, "System info (%s)\n", rep.At.Format("2006-01-02 15:04:05"))
	if len(rep.Blocks) == 0 {
		warnColor.Fprintln(w, "No metrics selected. Enable logging to choose metrics.")
		return
	}
	for _, b := range rep.Blocks {
		headerColor.Fprintf(w, "[%s]\n", b.Category)
		for _, l := range b.Lines {
			fmt.Fprintln(w, l)
		}
	}
	for _, s := range rep.Skipped {
		warnColor.Fprintf(w, "skipped %s: %v\n", s.Category, s.Err)
	}
}

func renderRecords(w io.Writer, title string, recs []process.Record) {
	headerColor.Fprintf(w, "%s:\n", title)

	tw := newTable(w)
	fmt.Fprintln(tw, "PID\tNAME\tMEMORY")
	fmt.Fprintln(tw, "---\t----\t------")
	for _, r := range recs {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", r.PID, r.Name, r.Memory.Humanized())
	}
	tw.Flush()
}

func renderRanked(w io.Writer, title string, recs []process.Ranked) {
	headerColor.Fprintf(w, "%s:\n", title)

	tw := newTable(w)
	fmt.Fprintln(tw, "PID\tNAME\tCPU (%)\tMEMORY")
	fmt.Fprintln(tw, "---\t----\t-------\t------")
	for _, r := range recs {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%s\n", r.PID, r.Name, r.CPUPercent, r.Memory.Humanized())
	}
	tw.Flush()
}

func renderNotFound(w io.Writer, term string) {
	failColor.Fprintf(w, "Process not found: %q\n", term)
}

func renderNotice(w io.Writer, msg string) {
	successColor.Fprintln(w, msg)
}
