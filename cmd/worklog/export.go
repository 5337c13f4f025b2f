package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tgienger/worklog/internal/models"
)

// exportRecord is the stable export shape of an entry
type exportRecord struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Task     string `json:"task"`
	Employee string `json:"employee"`
	Duration int    `json:"duration_minutes"`
	Notes    string `json:"notes"`
}

var csvHeader = []string{"id", "date", "task", "employee", "duration_minutes", "notes"}

func newExportCmd(s *session) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all entries to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			write, ok := exporters[format]
			if !ok {
				return fmt.Errorf("unknown export format %q (want csv or json)", format)
			}
			entries, err := s.db.ListEntries(cmd.Context())
			if err != nil {
				return err
			}
			s.log.Info("export", "format", format, "entries", len(entries))
			return write(cmd.OutOrStdout(), records(entries))
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "Output format: csv, json")
	return cmd
}

var exporters = map[string]func(io.Writer, []exportRecord) error{
	"csv":  writeCSV,
	"json": writeJSON,
}

func records(entries []models.Entry) []exportRecord {
	out := make([]exportRecord, len(entries))
	for i, e := range entries {
		out[i] = exportRecord{
			ID:       e.ID.String(),
			Date:     e.DateString(),
			Task:     e.Task,
			Employee: e.Employee,
			Duration: e.Duration,
			Notes:    e.Notes,
		}
	}
	return out
}

func writeCSV(w io.Writer, recs []exportRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range recs {
		row := []string{r.ID, r.Date, r.Task, r.Employee, strconv.Itoa(r.Duration), r.Notes}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, recs []exportRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(recs)
}
