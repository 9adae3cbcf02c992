package cli

import (
	"math/rand"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/giftring/pkg/config"
	"github.com/matzehuels/giftring/pkg/errors"
	"github.com/matzehuels/giftring/pkg/pairing"
)

// revealCommand creates the reveal command.
func (c *CLI) revealCommand() *cobra.Command {
	var opts drawOpts

	cmd := &cobra.Command{
		Use:   "reveal <roster>",
		Short: "Draw a pairing and reveal it interactively",
		Long: `Reveal draws a pairing and starts an interactive session where the
participants pass the keyboard around: each one selects their own name and
privately sees who they are giving to. Nothing is written to disk.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roster, err := config.Load(args[0])
			if err != nil {
				return err
			}

			algorithm, err := pairing.ParseAlgorithm(opts.algorithm)
			if err != nil {
				return err
			}
			pairs, err := pairing.Solve(roster.Names, roster.Fixed, roster.Block, pairing.Options{
				Algorithm: algorithm,
				Rand:      rand.New(rand.NewSource(opts.effectiveSeed())),
				Logger:    c.Logger.Infof,
			})
			if err != nil {
				return err
			}

			return runReveal(roster.Names, pairs)
		},
	}

	opts.register(cmd)

	return cmd
}

// runReveal starts the interactive reveal session.
func runReveal(names []string, pairs pairing.Pairing) error {
	model := NewRevealModel(names, pairs)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "reveal session")
	}
	return nil
}
