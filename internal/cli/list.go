package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/x/ansi"
	"github.com/pablasso/kanban/internal/board"
	"github.com/pablasso/kanban/internal/task"
	"github.com/spf13/cobra"
)

// Description column width in table output.
const listDescriptionWidth = 40

func newListCmd(a *app) *cobra.Command {
	var (
		statusFlag string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks column by column",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses := task.Statuses()
			if statusFlag != "" {
				s, err := task.ParseStatus(statusFlag)
				if err != nil {
					return err
				}
				statuses = []task.Status{s}
			}

			tasks, err := a.client.ListTasks(cmd.Context())
			if err != nil {
				return explain(err, a.cfg.APIURL)
			}

			b := board.New(tasks)
			var rows []task.Task
			for _, s := range statuses {
				rows = append(rows, b.Column(s)...)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if rows == nil {
					rows = []task.Task{}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}

			if len(rows) == 0 {
				fmt.Fprintln(out, "No tasks.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "STATUS\tID\tTITLE\tDESCRIPTION")
			for _, t := range rows {
				desc := strings.SplitN(t.Description, "\n", 2)[0]
				fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
					t.Status.Title(),
					t.ID,
					t.Title,
					ansi.Truncate(desc, listDescriptionWidth, "…"),
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&statusFlag, "status", "s", "", "only show one column (todo, doing, done)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print tasks as JSON")
	return cmd
}
