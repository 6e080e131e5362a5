package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	snarlerrors "github.com/matzehuels/snarl/pkg/errors"
	"github.com/matzehuels/snarl/pkg/graph"
	"github.com/matzehuels/snarl/pkg/store"
)

// boardCommand creates the board store command.
func (c *CLI) boardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Push, pull, and manage boards in the configured store",
	}

	cmd.AddCommand(c.boardPushCommand())
	cmd.AddCommand(c.boardPullCommand())
	cmd.AddCommand(c.boardListCommand())
	cmd.AddCommand(c.boardRemoveCommand())

	return cmd
}

// openStore builds the configured board store.
func (c *CLI) openStore(cmd *cobra.Command) (store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	st, err := newStore(cmd.Context(), cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
	}
	return st, nil
}

// boardPushCommand creates the "board push" subcommand.
func (c *CLI) boardPushCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "push [file]",
		Short: "Upload a board file to the store",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := boardArg(args)
			if name == "" {
				name = strings.TrimSuffix(filepath.Base(path), ".json")
			}
			if err := snarlerrors.ValidateBoardName(name); err != nil {
				return err
			}

			// Validate the file is a well-formed board before uploading.
			g, err := loadBoard(path)
			if err != nil {
				return err
			}
			data, err := graph.Marshal(g)
			if err != nil {
				return err
			}

			st, err := c.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			b := store.NewBoard(name, data)
			if err := st.Put(cmd.Context(), b); err != nil {
				return fmt.Errorf("push board: %w", err)
			}

			printSuccess("Pushed %s", name)
			printKeyValue("id", b.ID)
			printStats(g.NodeCount(), g.WireCount(), false)
			printNextStep("Pull it back", fmt.Sprintf("snarl board pull %s", b.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "board name (defaults to the file name)")
	return cmd
}

// boardPullCommand creates the "board pull" subcommand.
func (c *CLI) boardPullCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "pull <id>",
		Short: "Download a board from the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			b, err := st.Get(cmd.Context(), args[0])
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("board %s not found", args[0])
			}
			if err != nil {
				return fmt.Errorf("pull board: %w", err)
			}

			g, err := graph.Unmarshal[json.RawMessage](b.Graph)
			if err != nil {
				return fmt.Errorf("decode board %s: %w", b.ID, err)
			}

			if output == "" {
				output = b.Name + ".json"
			}
			if err := saveBoard(output, g); err != nil {
				return err
			}

			printSuccess("Pulled %s", b.Name)
			printFile(output)
			printStats(g.NodeCount(), g.WireCount(), false)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (defaults to <name>.json)")
	return cmd
}

// boardListCommand creates the "board ls" subcommand.
func (c *CLI) boardListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List boards in the store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			boards, err := st.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("list boards: %w", err)
			}
			if len(boards) == 0 {
				printInfo("No boards in the store")
				return nil
			}

			sort.Slice(boards, func(i, j int) bool {
				return boards[i].UpdatedAt.After(boards[j].UpdatedAt)
			})
			for _, b := range boards {
				printKeyValue(b.Name, fmt.Sprintf("%s  updated %s",
					b.ID, b.UpdatedAt.Local().Format("2006-01-02 15:04")))
			}
			return nil
		},
	}
}

// boardRemoveCommand creates the "board rm" subcommand.
func (c *CLI) boardRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a board from the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd)
			if err != nil {
				return err
			}
			defer st.Close()

			err = st.Delete(cmd.Context(), args[0])
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("board %s not found", args[0])
			}
			if err != nil {
				return fmt.Errorf("delete board: %w", err)
			}

			printSuccess("Deleted board %s", args[0])
			return nil
		},
	}
}
