package cmd

import (
	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. Each call returns fresh commands so
// flag values never leak between executions.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "repaso",
		Short: "Adaptive multiple-choice review in the terminal",
		Long: "Repaso quizzes you on question modules, drawing more often from the\n" +
			"subtopics you have been getting wrong.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd)
		},
	}

	root.PersistentFlags().String("db", "", "Path to SQLite database file (overrides REPASO_DB)")
	root.PersistentFlags().String("questions", "", "Question dataset path or URL (overrides REPASO_QUESTIONS_URL)")
	root.PersistentFlags().String("modules", "", "Module index path or URL (overrides REPASO_MODULES_URL)")

	root.AddCommand(newModulesCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newResetCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func Execute() error {
	return newRootCmd().Execute()
}
