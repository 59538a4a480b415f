package cli

import (
	"errors"
	"fmt"

	"github.com/pablasso/kanban/internal/board"
	"github.com/pablasso/kanban/internal/task"
	"github.com/spf13/cobra"
)

func newMoveCmd(a *app) *cobra.Command {
	var index int

	cmd := &cobra.Command{
		Use:   "move <id> <status>",
		Short: "Move a task to another column or position",
		Long: `Move a task to a column, at the end unless --index is given (0 is the top).
Other tasks in the affected columns are renumbered to keep the order contiguous.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			dest, err := task.ParseStatus(args[1])
			if err != nil {
				return err
			}

			tasks, err := a.client.ListTasks(cmd.Context())
			if err != nil {
				return explain(err, a.cfg.APIURL)
			}
			b := board.New(tasks)

			at := index
			if at < 0 {
				at = len(b.Column(dest))
			}

			out := cmd.OutOrStdout()
			mv, err := b.Move(id, dest, at)
			switch {
			case errors.Is(err, board.ErrNoop):
				fmt.Fprintf(out, "Task #%d is already there\n", id)
				return nil
			case errors.Is(err, board.ErrNotFound):
				return fmt.Errorf("task %d not found", id)
			case err != nil:
				return err
			}

			if err := mv.Apply(cmd.Context(), a.client); err != nil {
				return explain(err, a.cfg.APIURL)
			}
			a.logger.WithField("changes", len(mv.Changes)).Debug("move applied")
			fmt.Fprintf(out, "Moved task #%d to %s (position %d)\n", id, mv.To.Title(), mv.ToIndex+1)
			return nil
		},
	}

	cmd.Flags().IntVarP(&index, "index", "i", -1, "position in the destination column (default: end)")
	return cmd
}
