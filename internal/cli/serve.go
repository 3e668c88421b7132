package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/permgroup/pkg/server"
	"github.com/matzehuels/permgroup/pkg/store"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr         string
		maxLive      int
		maxDegree    int
		storeBackend string
		storePath    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve exposes stored groups over HTTP. Definitions are kept in the
configured store; built chains are cached in memory, up to --max-live groups.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg := c.Config
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("max-live") {
				cfg.Server.MaxLive = maxLive
			}
			if cmd.Flags().Changed("max-degree") {
				cfg.Server.MaxDegree = maxDegree
			}
			if cmd.Flags().Changed("store") {
				cfg.Store.Backend = storeBackend
			}
			if cmd.Flags().Changed("store-path") {
				cfg.Store.Path = storePath
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			st, err := store.Open(ctx, cfg.Store)
			if err != nil {
				return err
			}
			defer st.Close()

			runner, err := c.newRunner(ctx)
			if err != nil {
				return err
			}
			defer runner.Close()

			cfg.Server.Build = c.pipelineOptions()
			cfg.Server.Build.Logger = logger
			srv, err := server.New(cfg.Server, runner, st, logger)
			if err != nil {
				return err
			}
			defer srv.Close()

			logger.Info("starting server",
				"addr", cfg.Server.Addr,
				"store", cfg.Store.Backend,
				"provider", cfg.Provider)
			printNextStep("Check it with", "curl http://"+cfg.Server.Addr+"/healthz")
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().IntVar(&maxLive, "max-live", server.DefaultMaxLive, "built groups kept in memory")
	cmd.Flags().IntVar(&maxDegree, "max-degree", server.DefaultMaxDegree, "largest degree accepted when creating groups")
	cmd.Flags().StringVar(&storeBackend, "store", store.BackendMemory, "definition store: "+strings.Join(store.Backends(), ", "))
	cmd.Flags().StringVar(&storePath, "store-path", "", "directory of the file store or database of the sqlite store")
	cmd.RegisterFlagCompletionFunc("store", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return store.Backends(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}
