package cli

import (
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/matzehuels/giftring/internal/server"
	"github.com/matzehuels/giftring/pkg/config"
	"github.com/matzehuels/giftring/pkg/pairing"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		opts      drawOpts
		addr      string
		redisAddr string
	)

	cmd := &cobra.Command{
		Use:   "serve <roster>",
		Short: "Draw a pairing and serve it over HTTP",
		Long: `Serve draws a pairing and starts an HTTP server where each participant
redeems a one-time claim code at /claim/{code} to see their pick. Codes are
printed once at startup for out-of-band distribution; a redeemed code is
gone, so results stay anonymous.

By default claims live in process memory. With --redis they are shared
through Redis, so several instances can serve the same draw.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

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
			printSuccess("Paired %d participants", len(pairs))

			var store server.ClaimStore
			if redisAddr != "" {
				rs, err := server.NewRedisStore(ctx, redisAddr)
				if err != nil {
					return err
				}
				defer rs.Close()
				store = rs
				c.Logger.Debugf("Using Redis claim store at %s", redisAddr)
			} else {
				store = server.NewMemoryStore()
			}

			srv := server.New(c.Logger, store)
			codes, err := srv.Seed(ctx, pairs)
			if err != nil {
				return err
			}

			printNewline()
			printInfo("Claim codes (send each participant only their own):")
			for _, name := range roster.Names {
				printKeyValue(name, "/claim/"+codes[name])
			}
			printNewline()

			return srv.ListenAndServe(ctx, addr)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for a shared claim store")

	return cmd
}
