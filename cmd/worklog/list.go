package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tgienger/worklog/internal/models"
	"github.com/tgienger/worklog/internal/query"
)

type listOptions struct {
	employee string
	date     string
	from     string
	to       string
	term     string
	duration int
}

func newListCmd(s *session) *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries, newest first",
		Long: `List entries matching every given filter, newest first.
Dates use the DD-MM-YYYY format; --from and --to are inclusive.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := opts.filter(cmd.Flags().Changed("duration"))
			if err != nil {
				return err
			}
			entries, err := s.db.ListEntriesFiltered(cmd.Context(), f)
			if err != nil {
				return err
			}
			s.log.Debug("list", "matches", len(entries))
			printList(cmd.OutOrStdout(), entries)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.employee, "employee", "", "Employee name contains this text")
	cmd.Flags().StringVar(&opts.date, "date", "", "Entries on this day (DD-MM-YYYY)")
	cmd.Flags().StringVar(&opts.from, "from", "", "Start of a date range (DD-MM-YYYY)")
	cmd.Flags().StringVar(&opts.to, "to", "", "End of a date range (DD-MM-YYYY)")
	cmd.Flags().StringVar(&opts.term, "term", "", "Task name or notes contain this text")
	cmd.Flags().IntVar(&opts.duration, "duration", 0, "Time spent, in minutes")
	cmd.MarkFlagsRequiredTogether("from", "to")
	return cmd
}

// filter turns the flags into an EntryFilter, validating dates and ranges
func (o listOptions) filter(withDuration bool) (models.EntryFilter, error) {
	f := models.EntryFilter{
		EmployeeContains: o.employee,
		Term:             o.term,
	}

	if o.date != "" {
		d, err := models.ParseDate(o.date)
		if err != nil {
			return f, err
		}
		f.Date = models.FormatDate(d)
	}

	if o.from != "" || o.to != "" {
		from, err := models.ParseDate(o.from)
		if err != nil {
			return f, err
		}
		to, err := models.ParseDate(o.to)
		if err != nil {
			return f, err
		}
		if from.After(to) {
			return f, query.ErrRangeOrder
		}
		f.From, f.To = &from, &to
	}

	if withDuration {
		if o.duration < 0 {
			return f, fmt.Errorf("%w: duration must not be negative", models.ErrValidation)
		}
		d := o.duration
		f.Duration = &d
	}
	return f, nil
}

func printList(w io.Writer, entries []models.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries found.")
		return
	}

	for _, e := range entries {
		fmt.Fprintf(w, "%s  %-20s %5d min  %s", e.DateString(), e.Employee, e.Duration, e.Task)
		if e.Notes != "" {
			fmt.Fprintf(w, " (%s)", e.Notes)
		}
		fmt.Fprintln(w)
	}
}
