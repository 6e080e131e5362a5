package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/snarl/pkg/snarl"
)

// initCommand creates the "init" command for starting a new board file.
func (c *CLI) initCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Create an empty board file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := boardArg(args)

			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}
			}

			if err := saveBoard(path, snarl.New[json.RawMessage]()); err != nil {
				return fmt.Errorf("write board: %w", err)
			}

			printSuccess("Created empty board")
			printFile(path)
			printNextStep("Add a node", fmt.Sprintf("snarl node add %s --payload '{}'", path))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing board file")
	return cmd
}
