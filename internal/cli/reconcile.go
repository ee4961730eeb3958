package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/konverty/backend/internal/models"
	"github.com/konverty/backend/internal/reconcile"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var errCutoffDay = errors.New("the cutoff day must be between 1 and 31")

// reconcileInput is the file format of the reconcile command. It matches
// the snapshot of an archived month, extended by the cutoff day.
type reconcileInput struct {
	DailyExpenses []reconcile.Expense       `json:"dailyExpenses"`
	NeedsItems    []reconcile.ChecklistItem `json:"needsItems"`
	WantsItems    []reconcile.ChecklistItem `json:"wantsItems"`
	CutoffDay     int                       `json:"cutoffDay"`
}

func newReconcileCommand() *cobra.Command {
	var cutoffDay int

	cmd := &cobra.Command{
		Use:   "reconcile FILE",
		Short: "Reconcile a budget file and print the checklists",
		Long: `Reads daily expenses and checklists from a JSON file and prints the checklists
with the actual amounts a reconciliation computes. Use "-" to read from stdin.
Nothing is written to the database.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			var input reconcileInput
			err := json.NewDecoder(in).Decode(&input)
			if err != nil {
				return fmt.Errorf("decoding %s: %w", args[0], err)
			}

			if cmd.Flags().Changed("cutoff") {
				input.CutoffDay = cutoffDay
			}

			if input.CutoffDay == 0 {
				input.CutoffDay = models.DefaultCutoffDay
			}

			if input.CutoffDay < 1 || input.CutoffDay > 31 {
				return errCutoffDay
			}

			needs, wants := reconcile.Reconcile(input.DailyExpenses, input.NeedsItems, input.WantsItems, input.CutoffDay)

			table, err := checklistTable(needs, wants)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), table)
			return err
		},
	}

	cmd.Flags().IntVar(&cutoffDay, "cutoff", 0, "last day of the month that is reconciled, overrides the file")

	return cmd
}

// checklistTable renders both checklists as one table.
func checklistTable(needs, wants []reconcile.ChecklistItem) (string, error) {
	data := pterm.TableData{{"List", "Category", "Envelope", "Expected", "Actual", "Diff"}}

	for _, list := range []struct {
		name  string
		items []reconcile.ChecklistItem
	}{
		{string(models.Needs), needs},
		{string(models.Wants), wants},
	} {
		for _, item := range list.items {
			data = append(data, []string{
				list.name,
				item.Category,
				item.Envelope,
				item.Expected.String(),
				item.Actual.Decimal.String(),
				item.Expected.Sub(item.Actual.Decimal).String(),
			})
		}
	}

	return pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
}
