package cli

import (
	"fmt"
	"strings"

	"github.com/pablasso/kanban/internal/api"
	"github.com/pablasso/kanban/internal/task"
	"github.com/spf13/cobra"
)

func newAddCmd(a *app) *cobra.Command {
	var (
		description string
		statusFlag  string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Long:  `Create a task at the end of a column (To Do unless --status is given). Words after "add" form the title.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			create := task.NewCreate(strings.Join(args, " "), description)
			if statusFlag != "" {
				s, err := task.ParseStatus(statusFlag)
				if err != nil {
					return err
				}
				create.Status = s
			}
			if err := create.Validate(); err != nil {
				return err
			}

			created, err := a.client.CreateTask(cmd.Context(), create)
			if err != nil {
				return explain(err, a.cfg.APIURL)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created task #%d in %s\n", created.ID, created.Status.Title())
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "task description")
	cmd.Flags().StringVarP(&statusFlag, "status", "s", "", "column to create the task in")
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	var title, description string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a task's title or description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var update task.Update
			if cmd.Flags().Changed("title") {
				t := strings.TrimSpace(title)
				if err := (task.Create{Title: t}).Validate(); err != nil {
					return err
				}
				update.Title = &t
			}
			if cmd.Flags().Changed("description") {
				d := strings.TrimSpace(description)
				if err := (task.Create{Title: "-", Description: d}).Validate(); err != nil {
					return err
				}
				update.Description = &d
			}
			if update.IsEmpty() {
				return fmt.Errorf("nothing to change: pass --title or --description")
			}

			updated, err := a.client.UpdateTask(cmd.Context(), id, update)
			if api.IsNotFound(err) {
				return fmt.Errorf("task %d not found", id)
			}
			if err != nil {
				return explain(err, a.cfg.APIURL)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated task #%d: %s\n", updated.ID, updated.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description (empty clears it)")
	return cmd
}

func newRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			err = a.client.DeleteTask(cmd.Context(), id)
			if api.IsNotFound(err) {
				return fmt.Errorf("task %d not found", id)
			}
			if err != nil {
				return explain(err, a.cfg.APIURL)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task #%d\n", id)
			return nil
		},
	}
}
