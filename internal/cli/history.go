package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// historyCommand creates the history command.
func (c *CLI) historyCommand() *cobra.Command {
	var (
		histPath string
		mongoURI string
		showAll  bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded draws",
		Long: `History lists the draws recorded by previous runs: when they happened,
which algorithm and seed produced them, and who took part. Pairs are not
shown unless --pairs is given, so browsing history does not spoil a draw.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := c.openHistory(ctx, histPath, mongoURI)
			if err != nil {
				return err
			}
			records, err := store.List(ctx)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				printInfo("No draws recorded yet")
				return nil
			}

			for _, rec := range records {
				printKeyValue("draw", rec.ID)
				printKeyValue("when", rec.CreatedAt.Local().Format("2006-01-02 15:04"))
				printKeyValue("algorithm", fmt.Sprintf("%s (seed %d)", rec.Algorithm, rec.Seed))
				printKeyValue("names", strings.Join(rec.Names, ", "))
				if showAll {
					for _, name := range rec.Names {
						printKeyValue("  "+name, rec.Pairs[name])
					}
				}
				printNewline()
			}
			printInfo("%d draws recorded", len(records))
			return nil
		},
	}

	cmd.Flags().StringVar(&histPath, "history", "", "history file path (default XDG data dir)")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "MongoDB URI for shared draw history")
	cmd.Flags().BoolVar(&showAll, "pairs", false, "also show who picked whom (spoils the draw)")

	return cmd
}
