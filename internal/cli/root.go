package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/permgroup/pkg/buildinfo"
	"github.com/matzehuels/permgroup/pkg/provider"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var (
		providerFlag string
		poolCapacity int
	)

	root := &cobra.Command{
		Use:          appName,
		Short:        "permgroup computes with permutation groups",
		Long:         `permgroup builds Schreier-Sims stabilizer chains for permutation groups given by generators, and answers order, orbit and membership questions about them.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path, explicit := c.configPath, c.configPath != ""
			if !explicit {
				path = defaultConfigPath()
			}
			cfg, err := loadConfig(path, explicit)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("provider") {
				cfg.Provider = providerFlag
			}
			if cmd.Flags().Changed("pool-capacity") {
				cfg.PoolCapacity = poolCapacity
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/"+appName+"/"+configFile+")")
	flags.StringVar(&providerFlag, "provider", string(provider.KindHeap), "permutation provider: "+strings.Join(provider.Kinds(), ", "))
	flags.IntVar(&poolCapacity, "pool-capacity", provider.DefaultPoolCapacity, "pool size for the pooled provider")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable the summary cache")
	flags.BoolVar(&c.refresh, "refresh", false, "recompute cached results")
	root.RegisterFlagCompletionFunc("provider", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return provider.Kinds(), cobra.ShellCompDirectiveNoFileComp
	})

	// Register all subcommands
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.orbitCommand())
	root.AddCommand(c.memberCommand())
	root.AddCommand(c.chainCommand())
	root.AddCommand(c.elementsCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
