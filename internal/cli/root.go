package cli

import (
	"github.com/spf13/cobra"
)

var (
	configPath string
	username   string
	password   string
)

// NewRootCmd builds the todolist command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "todolist",
		Short: "Personal to-do list with deadline reminders",
		Long: `todolist keeps per-user tasks in a local SQLite file and raises a desktop
notification while a task's deadline is less than an hour away.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVarP(&username, "username", "u", "", "Account username")
	rootCmd.PersistentFlags().StringVarP(&password, "password", "p", "", "Account password")

	rootCmd.AddCommand(signupCmd())
	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(completeCmd())
	rootCmd.AddCommand(deleteCmd())
	rootCmd.AddCommand(watchCmd())

	return rootCmd
}
