package commands

import (
	"fmt"

	"github.com/alan/pr-checks/cmd"
	"github.com/spf13/cobra"
)

// CommandBuilder helps create the check commands with a common shape
type CommandBuilder struct {
	Use          string
	Aliases      []string
	Short        string
	Long         string
	ExampleUsage []string
}

// BuildCommand creates a cobra command taking exactly <token> <valid_labels> <pr_number>
func (cb *CommandBuilder) BuildCommand(runFunc func(cobraCmd *cobra.Command, args []string) error) *cobra.Command {
	cobraCmd := &cobra.Command{
		Use:          cb.Use + " <token> <valid_labels> <pr_number>",
		Aliases:      cb.Aliases,
		Short:        cb.Short,
		Long:         cb.Long,
		Args:         exactCheckArgs,
		SilenceUsage: true,
		RunE:         runFunc,
	}

	// Add examples if provided
	if len(cb.ExampleUsage) > 0 {
		examples := "\nExamples:\n"
		for _, example := range cb.ExampleUsage {
			examples += "  " + example + "\n"
		}
		cobraCmd.Long += examples
	}

	return cobraCmd
}

func exactCheckArgs(cobraCmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(3)(cobraCmd, args); err != nil {
		return fmt.Errorf("%w: %w", cmd.ErrInvalidArguments, err)
	}
	return nil
}
