package cli

import (
	"github.com/mvp-joe/pmdo-query/internal/report"
	"github.com/spf13/cobra"
)

var classesCmd = &cobra.Command{
	Use:   "classes <category>",
	Short: "List the C# types declared in a category's source files",
	Args:  cobra.ExactArgs(1),
	RunE:  runClasses,
}

var classCmd = &cobra.Command{
	Use:   "class <name>",
	Short: "Show XML documentation for one C# type",
	Long: `Show a type's summary, remarks, public fields and properties, and public
methods with their signatures. The name is matched case-insensitively.

Example:
  pmdq class SkillInfo`,
	Args: cobra.ExactArgs(1),
	RunE: runClass,
}

func init() {
	rootCmd.AddCommand(classesCmd, classCmd)
}

func runClasses(cmd *cobra.Command, args []string) error {
	engine, err := newEngine(cmd)
	if err != nil {
		return err
	}

	list, err := engine.ListClasses(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return render(cmd, list, func() string { return report.ClassList(list) })
}

func runClass(cmd *cobra.Command, args []string) error {
	engine, err := newEngine(cmd)
	if err != nil {
		return err
	}

	desc, found, err := engine.ClassDocs(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if !found {
		response := map[string]any{"class_name": args[0], "found": false}
		return render(cmd, response, func() string { return report.ClassNotFound(args[0]) })
	}
	return render(cmd, desc, func() string { return report.ClassDoc(desc) })
}
