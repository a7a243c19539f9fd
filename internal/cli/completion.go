package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for smartview.

To load completions:

Bash:
  $ source <(smartview completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ smartview completion bash > /etc/bash_completion.d/smartview
  # macOS:
  $ smartview completion bash > $(brew --prefix)/etc/bash_completion.d/smartview

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ smartview completion zsh > "${fpath[1]}/_smartview"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ smartview completion fish | source

  # To load completions for each session, execute once:
  $ smartview completion fish > ~/.config/fish/completions/smartview.fish

PowerShell:
  PS> smartview completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> smartview completion powershell > smartview.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}
