package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Veraticus/jotbot/internal/model"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const none = "-"

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))

// RenderItem describes an analysis result on one line. A nil item means the
// message was neither a purchase nor a task.
func RenderItem(item model.Item) string {
	switch it := item.(type) {
	case model.Purchase:
		return fmt.Sprintf("%s %s  name=%s cost=%s purpose=%s",
			PurchaseIcon, BoldStyle.Render("purchase"),
			orNone(it.Name), formatCost(it.Cost), it.Purpose)
	case model.Task:
		return fmt.Sprintf("%s %s  title=%q deadline=%s reminder=%s",
			TaskIcon, BoldStyle.Render("task"),
			model.Deref(it.Title), formatDate(it.Deadline), orNone(it.Reminder))
	default:
		return SubtleStyle.Render("nothing to record")
	}
}

// RenderPurchases writes purchases as a table. Times are relative to now.
func RenderPurchases(out io.Writer, records []model.PurchaseRecord, now time.Time) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(out, SubtleStyle.Render("No purchases found."))
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, header("ID", "NAME", "COST", "PURPOSE", "ADDED"))
	for _, r := range records {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			r.ID,
			orNone(r.Name),
			formatCost(r.Cost),
			InfoStyle.Render(r.Purpose),
			SubtleStyle.Render(humanize.RelTime(r.CreatedAt, now, "ago", "from now")),
		)
	}
	return w.Flush()
}

// RenderSpending writes per-purpose totals, largest first.
func RenderSpending(out io.Writer, totals map[string]decimal.Decimal) error {
	if len(totals) == 0 {
		return nil
	}

	purposes := make([]string, 0, len(totals))
	for p := range totals {
		purposes = append(purposes, p)
	}
	sort.Slice(purposes, func(i, j int) bool {
		if c := totals[purposes[i]].Cmp(totals[purposes[j]]); c != 0 {
			return c > 0
		}
		return purposes[i] < purposes[j]
	})

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, header("PURPOSE", "TOTAL"))
	for _, p := range purposes {
		fmt.Fprintf(w, "%s\t%s\n", p, formatAmount(totals[p]))
	}
	return w.Flush()
}

// RenderTasks writes tasks as a table. Overdue deadlines are highlighted.
func RenderTasks(out io.Writer, records []model.TaskRecord, now time.Time) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(out, SubtleStyle.Render("No tasks found."))
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, header("ID", "TITLE", "DEADLINE", "DUE", "REMINDER"))
	for _, r := range records {
		due := none
		if r.Deadline != nil {
			due = humanize.RelTime(*r.Deadline, now, "ago", "from now")
			if r.Deadline.Before(now) {
				due = WarningStyle.Render(due)
			}
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			r.ID,
			model.Deref(r.Title),
			formatDate(r.Deadline),
			due,
			orNone(r.Reminder),
		)
	}
	return w.Flush()
}

// StatusRow describes one classifier slot for RenderStatus.
type StatusRow struct {
	TrainedAt time.Time
	Slot      string
	Labels    int
	Examples  int
	Trained   bool
}

// RenderStatus writes which classifiers are ready.
func RenderStatus(out io.Writer, rows []StatusRow, now time.Time) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, header("CLASSIFIER", "STATE", "LABELS", "EXAMPLES", "TRAINED"))
	for _, r := range rows {
		if !r.Trained {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.Slot, ErrorStyle.Render("untrained"), none, none, none)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			r.Slot,
			SuccessStyle.Render("ready"),
			r.Labels,
			humanize.Comma(int64(r.Examples)),
			humanize.RelTime(r.TrainedAt, now, "ago", "from now"),
		)
	}
	return w.Flush()
}

func header(cols ...string) string {
	styled := make([]string, len(cols))
	for i, c := range cols {
		styled[i] = headerStyle.Render(c)
	}
	return strings.Join(styled, "\t")
}

func orNone(s *string) string {
	if s == nil || *s == "" {
		return none
	}
	return *s
}

func formatCost(d *decimal.Decimal) string {
	if d == nil {
		return none
	}
	return formatAmount(*d)
}

func formatAmount(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return humanize.CommafWithDigits(f, 2)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return none
	}
	return t.Format(time.DateOnly)
}
