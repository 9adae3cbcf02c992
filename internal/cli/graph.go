package cli

import (
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/giftring/pkg/config"
	"github.com/matzehuels/giftring/pkg/errors"
	"github.com/matzehuels/giftring/pkg/pairing"
	"github.com/matzehuels/giftring/pkg/render"
)

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		opts   drawOpts
		format string
		output string
		result bool
	)

	cmd := &cobra.Command{
		Use:   "graph <roster>",
		Short: "Render the constraint graph or a result ring",
		Long: `Graph renders the allowed-edge graph of a roster: every pick each
participant could still receive after forces and blocks are applied, with
forced edges highlighted. With --result it instead draws a trial pairing
as a ring.

Formats: dot (text), svg, png. DOT goes to stdout unless --output is set;
svg and png require --output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roster, err := config.Load(args[0])
			if err != nil {
				return err
			}

			var dot string
			if result {
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
				dot = render.PairingDOT(roster.Names, pairs)
			} else {
				allowed := pairing.BuildAllowed(roster.Names, roster.Fixed, roster.Block)
				dot = render.AllowedDOT(roster.Names, allowed, roster.Fixed)
			}

			switch format {
			case "dot":
				if output == "" {
					cmd.Print(dot)
					return nil
				}
				if err := os.WriteFile(output, []byte(dot), 0644); err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "write %s", output)
				}

			case "svg", "png":
				if output == "" {
					return errors.New(errors.ErrCodeInvalidConfig, "--output is required for %s", format)
				}
				renderFn := render.RenderSVG
				if format == "png" {
					renderFn = render.RenderPNG
				}
				data, err := renderFn(cmd.Context(), dot)
				if err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
				}
				if err := os.WriteFile(output, data, 0644); err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "write %s", output)
				}

			default:
				return errors.New(errors.ErrCodeInvalidConfig, "unknown format %q (want dot, svg, or png)", format)
			}

			printSuccess("Rendered %s", format)
			printFile(output)
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot, svg, png")
	cmd.Flags().StringVarP(&output, "output", "O", "", "output file (dot defaults to stdout)")
	cmd.Flags().BoolVar(&result, "result", false, "render a trial pairing instead of the constraint graph")

	return cmd
}
