package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for permgroup.

To load completions:

Bash:
  $ source <(permgroup completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ permgroup completion bash > /etc/bash_completion.d/permgroup
  # macOS:
  $ permgroup completion bash > $(brew --prefix)/etc/bash_completion.d/permgroup

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ permgroup completion zsh > "${fpath[1]}/_permgroup"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ permgroup completion fish | source

  # To load completions for each session, execute once:
  $ permgroup completion fish > ~/.config/fish/completions/permgroup.fish

PowerShell:
  PS> permgroup completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> permgroup completion powershell > permgroup.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}
