package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"todo-list/internal/service"
)

func signupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		RunE: withApp(false, func(cmd *cobra.Command, args []string, a *app) error {
			if err := a.session.Signup(cmd.Context(), username, password); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Account created successfully! You can now log in.")
			return nil
		}),
	}
}

func addCmd() *cobra.Command {
	var input service.TaskInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task",
		RunE: withApp(true, func(cmd *cobra.Command, args []string, a *app) error {
			task, err := a.session.AddTask(cmd.Context(), input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added task %d: %s\n", task.ID, task)
			return nil
		}),
	}

	cmd.Flags().StringVarP(&input.Title, "title", "t", "", "Task title")
	cmd.Flags().StringVarP(&input.Deadline, "deadline", "d", "", "Deadline as YYYY-MM-DD HH:MM")
	cmd.Flags().StringVar(&input.Priority, "priority", "Medium", "High, Medium or Low")

	return cmd
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tasks, earliest deadline first",
		RunE: withApp(true, func(cmd *cobra.Command, args []string, a *app) error {
			tasks, err := a.session.ListTasks(cmd.Context())
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks.")
				return nil
			}
			for _, task := range tasks {
				fmt.Fprintf(cmd.OutOrStdout(), "%4d  %s\n", task.ID, task)
			}
			return nil
		}),
	}
}

func completeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete [task-id]",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(true, func(cmd *cobra.Command, args []string, a *app) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			return a.session.MarkCompleted(cmd.Context(), id)
		}),
	}
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [task-id]",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(true, func(cmd *cobra.Command, args []string, a *app) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			return a.session.DeleteTask(cmd.Context(), id)
		}),
	}
}

func parseTaskID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", raw)
	}
	return uint(id), nil
}
