package cli

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/matzehuels/giftring/pkg/config"
	"github.com/matzehuels/giftring/pkg/deliver"
	"github.com/matzehuels/giftring/pkg/errors"
	"github.com/matzehuels/giftring/pkg/history"
	"github.com/matzehuels/giftring/pkg/pairing"
)

// drawCommand creates the draw command.
func (c *CLI) drawCommand() *cobra.Command {
	var (
		opts      drawOpts
		dryRun    bool
		reveal    bool
		outDir    string
		avoidLast int
		noHistory bool
		histPath  string
		mongoURI  string
	)

	cmd := &cobra.Command{
		Use:   "draw <roster>",
		Short: "Draw a pairing and write per-participant archives",
		Long: `Draw computes a random pairing for the roster, honoring forced and
blocked pairs, then writes one password-free ZIP archive per participant.
Each archive contains only that participant's pick, padded so file sizes
reveal nothing.

With --dry-run the pairing is computed and validated but nothing is written.
With --reveal an interactive picker shows each assignment privately instead
of writing archives.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			roster, err := config.Load(args[0])
			if err != nil {
				return err
			}
			printInfo("Loaded roster %s", StyleHighlight.Render(args[0]))
			printStats(len(roster.Names), len(roster.Fixed), len(roster.Block))

			block := roster.Block
			var store history.Store
			if !noHistory {
				store, err = c.openHistory(ctx, histPath, mongoURI)
				if err != nil {
					return err
				}
				if avoidLast != 0 {
					records, err := store.List(ctx)
					if err != nil {
						return err
					}
					block = history.Avoid(block, records, avoidLast)
					c.Logger.Debugf("Avoiding pairs from %d recorded draws", len(records))
				}
			}

			seed := opts.effectiveSeed()
			algorithm, err := pairing.ParseAlgorithm(opts.algorithm)
			if err != nil {
				return err
			}

			spinner := newSpinnerWithContext(ctx, "Drawing pairs...")
			spinner.Start()
			pairs, err := pairing.Solve(roster.Names, roster.Fixed, block, pairing.Options{
				Algorithm: algorithm,
				Rand:      rand.New(rand.NewSource(seed)),
				Logger:    c.Logger.Infof,
			})
			if err != nil {
				spinner.StopWithError(errors.UserMessage(err))
				return err
			}
			spinner.StopWithSuccess(fmt.Sprintf("Paired %d participants", len(pairs)))
			c.Logger.Debugf("Seed %d, algorithm %s", seed, algorithm)

			if dryRun {
				printInfo("Dry run, nothing written")
				return nil
			}

			rec := history.NewRecord(seed, string(algorithm), roster.Names, pairs)
			if store != nil {
				if err := store.Append(ctx, rec); err != nil {
					return err
				}
				printKeyValue("draw", rec.ID)
			}

			if reveal {
				return runReveal(roster.Names, pairs)
			}

			written, err := deliver.WriteArchives(roster.Names, pairs, deliver.Options{
				Dir:    outDir,
				DrawID: rec.ID,
				Rand:   rand.New(rand.NewSource(seed)),
			})
			if err != nil {
				return err
			}
			for _, path := range written {
				printFile(path)
			}
			printNewline()
			printNextStep("Hand each participant their own archive, or serve claims", appName+" serve "+args[0])
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "compute the pairing without writing anything")
	cmd.Flags().BoolVar(&reveal, "reveal", false, "reveal assignments interactively instead of writing archives")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory for archives (default current directory)")
	cmd.Flags().IntVar(&avoidLast, "avoid-last", 0, "block repeats of the last N recorded draws (-1 = all)")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "skip recording this draw")
	cmd.Flags().StringVar(&histPath, "history", "", "history file path (default XDG data dir)")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "MongoDB URI for shared draw history")

	return cmd
}

// openHistory selects the history backend: MongoDB when a URI is given,
// otherwise the JSON file store.
func (c *CLI) openHistory(ctx context.Context, path, mongoURI string) (history.Store, error) {
	if mongoURI != "" {
		store, err := history.NewMongoStore(ctx, history.MongoConfig{URI: mongoURI})
		if err != nil {
			return nil, err
		}
		c.Logger.Debugf("Using MongoDB history at %s", mongoURI)
		return store, nil
	}

	if path == "" {
		var err error
		path, err = defaultHistoryPath()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "resolve history path")
		}
	}
	c.Logger.Debugf("Using history file %s", path)
	return history.NewFileStore(path)
}
