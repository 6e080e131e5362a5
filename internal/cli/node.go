package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/snarl/pkg/snarl"
)

// nodeCommand creates the node management command.
func (c *CLI) nodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Add, remove, and inspect board nodes",
	}

	cmd.AddCommand(c.nodeAddCommand())
	cmd.AddCommand(c.nodeRemoveCommand())
	cmd.AddCommand(c.nodeListCommand())
	cmd.AddCommand(c.nodeMoveCommand())
	cmd.AddCommand(c.nodeOpenCommand())
	cmd.AddCommand(c.nodeCloseCommand())

	return cmd
}

// parseNodeArg converts a node id argument to a NodeID.
func parseNodeArg(raw string) (snarl.NodeID, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid node id %q", raw)
	}
	return snarl.NodeID(n), nil
}

// nodeAddCommand creates the "node add" subcommand.
func (c *CLI) nodeAddCommand() *cobra.Command {
	var (
		payload   string
		x, y      float64
		collapsed bool
	)

	cmd := &cobra.Command{
		Use:   "add [file]",
		Short: "Add a node to the board",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := boardArg(args)

			raw := json.RawMessage(payload)
			if !json.Valid(raw) {
				return fmt.Errorf("payload is not valid JSON: %s", payload)
			}

			g, err := loadBoard(path)
			if err != nil {
				return err
			}

			pos := snarl.Pos{X: x, Y: y}
			var id snarl.NodeID
			if collapsed {
				id = g.AddNodeCollapsed(raw, pos)
			} else {
				id = g.AddNode(raw, pos)
			}

			if err := saveBoard(path, g); err != nil {
				return err
			}

			printSuccess("Added node %d at (%g, %g)", id, x, y)
			printStats(g.NodeCount(), g.WireCount(), false)
			return nil
		},
	}

	cmd.Flags().StringVarP(&payload, "payload", "p", "null", "node payload as JSON")
	cmd.Flags().Float64VarP(&x, "x", "x", 0, "node x position")
	cmd.Flags().Float64VarP(&y, "y", "y", 0, "node y position")
	cmd.Flags().BoolVar(&collapsed, "collapsed", false, "insert the node collapsed")
	return cmd
}

// nodeRemoveCommand creates the "node rm" subcommand.
func (c *CLI) nodeRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id> [file]",
		Short: "Remove a node and its wires",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNodeArg(args[0])
			if err != nil {
				return err
			}
			path := boardArg(args[1:])

			g, err := loadBoard(path)
			if err != nil {
				return err
			}

			before := g.WireCount()
			if _, err := g.RemoveNode(id); err != nil {
				return fmt.Errorf("remove node %d: %w", id, err)
			}
			dropped := before - g.WireCount()

			if err := saveBoard(path, g); err != nil {
				return err
			}

			printSuccess("Removed node %d", id)
			if dropped > 0 {
				printDetail("Dropped %d wire(s)", dropped)
			}
			return nil
		},
	}
}

// nodeListCommand creates the "node ls" subcommand.
func (c *CLI) nodeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ls [file]",
		Short: "List the board's nodes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadBoard(boardArg(args))
			if err != nil {
				return err
			}

			for _, id := range g.NodeIDs() {
				info, _ := g.Info(id)
				payload, _ := g.Payload(id)
				state := "open"
				if !info.Open {
					state = "closed"
				}
				printKeyValue(fmt.Sprintf("node %d", id),
					fmt.Sprintf("(%g, %g) %s %s", info.Pos.X, info.Pos.Y, state, compactJSON(payload)))
			}
			printStats(g.NodeCount(), g.WireCount(), false)
			return nil
		},
	}
}

// nodeMoveCommand creates the "node move" subcommand.
func (c *CLI) nodeMoveCommand() *cobra.Command {
	var x, y float64

	cmd := &cobra.Command{
		Use:   "move <id> [file]",
		Short: "Move a node to a new position",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseNodeArg(args[0])
			if err != nil {
				return err
			}
			path := boardArg(args[1:])

			g, err := loadBoard(path)
			if err != nil {
				return err
			}
			if err := g.SetPos(id, snarl.Pos{X: x, Y: y}); err != nil {
				return fmt.Errorf("move node %d: %w", id, err)
			}
			if err := saveBoard(path, g); err != nil {
				return err
			}

			printSuccess("Moved node %d to (%g, %g)", id, x, y)
			return nil
		},
	}

	cmd.Flags().Float64VarP(&x, "x", "x", 0, "new x position")
	cmd.Flags().Float64VarP(&y, "y", "y", 0, "new y position")
	return cmd
}

// nodeOpenCommand creates the "node open" subcommand.
func (c *CLI) nodeOpenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "open <id> [file]",
		Short: "Expand a collapsed node",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.setNodeOpen(args, true)
		},
	}
}

// nodeCloseCommand creates the "node close" subcommand.
func (c *CLI) nodeCloseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "close <id> [file]",
		Short: "Collapse a node",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.setNodeOpen(args, false)
		},
	}
}

func (c *CLI) setNodeOpen(args []string, open bool) error {
	id, err := parseNodeArg(args[0])
	if err != nil {
		return err
	}
	path := boardArg(args[1:])

	g, err := loadBoard(path)
	if err != nil {
		return err
	}
	if err := g.SetOpen(id, open); err != nil {
		return fmt.Errorf("update node %d: %w", id, err)
	}
	if err := saveBoard(path, g); err != nil {
		return err
	}

	state := "closed"
	if open {
		state = "open"
	}
	printSuccess("Node %d is now %s", id, state)
	return nil
}

// compactJSON renders a payload on one line, truncated for display.
func compactJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	s := string(raw)
	if err := json.Compact(&buf, raw); err == nil {
		s = buf.String()
	}
	const max = 48
	if len(s) > max {
		return s[:max] + "…"
	}
	return s
}
