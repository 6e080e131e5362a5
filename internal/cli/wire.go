package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/snarl/pkg/snarl"
)

// wireCommand creates the wire management command.
func (c *CLI) wireCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wire",
		Short: "Connect and disconnect pins",
	}

	cmd.AddCommand(c.wireConnectCommand())
	cmd.AddCommand(c.wireDisconnectCommand())
	cmd.AddCommand(c.wireListCommand())

	return cmd
}

// parsePinArgs converts "<node>:<output>" and "<node>:<input>"
// arguments into pin identifiers.
func parsePinArgs(fromArg, toArg string) (snarl.OutPinID, snarl.InPinID, error) {
	var outNode, outPin, inNode, inPin int
	if _, err := fmt.Sscanf(fromArg, "%d:%d", &outNode, &outPin); err != nil {
		return snarl.OutPinID{}, snarl.InPinID{}, fmt.Errorf("invalid output pin %q (expected node:pin)", fromArg)
	}
	if _, err := fmt.Sscanf(toArg, "%d:%d", &inNode, &inPin); err != nil {
		return snarl.OutPinID{}, snarl.InPinID{}, fmt.Errorf("invalid input pin %q (expected node:pin)", toArg)
	}
	if outNode < 0 || outPin < 0 || inNode < 0 || inPin < 0 {
		return snarl.OutPinID{}, snarl.InPinID{}, fmt.Errorf("pin coordinates must be non-negative")
	}
	return snarl.OutPinID{Node: snarl.NodeID(outNode), Output: outPin},
		snarl.InPinID{Node: snarl.NodeID(inNode), Input: inPin}, nil
}

// wireConnectCommand creates the "wire connect" subcommand.
func (c *CLI) wireConnectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "connect <out-node>:<output> <in-node>:<input> [file]",
		Short: "Wire an output pin to an input pin",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, in, err := parsePinArgs(args[0], args[1])
			if err != nil {
				return err
			}
			path := boardArg(args[2:])

			g, err := loadBoard(path)
			if err != nil {
				return err
			}

			created, err := g.Connect(out, in)
			if err != nil {
				return fmt.Errorf("connect %s %s: %w", args[0], args[1], err)
			}
			if !created {
				printInfo("Wire %s %s %s already exists", args[0], iconArrow, args[1])
				return nil
			}

			if err := saveBoard(path, g); err != nil {
				return err
			}
			printSuccess("Connected %s %s %s", args[0], iconArrow, args[1])
			return nil
		},
	}
}

// wireDisconnectCommand creates the "wire disconnect" subcommand.
func (c *CLI) wireDisconnectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect <out-node>:<output> <in-node>:<input> [file]",
		Short: "Remove a wire",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, in, err := parsePinArgs(args[0], args[1])
			if err != nil {
				return err
			}
			path := boardArg(args[2:])

			g, err := loadBoard(path)
			if err != nil {
				return err
			}

			if !g.Disconnect(out, in) {
				printWarning("No wire %s %s %s", args[0], iconArrow, args[1])
				return nil
			}

			if err := saveBoard(path, g); err != nil {
				return err
			}
			printSuccess("Disconnected %s %s %s", args[0], iconArrow, args[1])
			return nil
		},
	}
}

// wireListCommand creates the "wire ls" subcommand.
func (c *CLI) wireListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ls [file]",
		Short: "List the board's wires",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadBoard(boardArg(args))
			if err != nil {
				return err
			}

			wires := g.Wires()
			snarl.SortWires(wires)
			for _, w := range wires {
				printDetail("%d:%d %s %d:%d", w.Out.Node, w.Out.Output, iconArrow, w.In.Node, w.In.Input)
			}
			printStats(g.NodeCount(), g.WireCount(), false)
			return nil
		},
	}
}
