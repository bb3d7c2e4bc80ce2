package terminal

import (
	"io"
	"os"

	"github.com/relasi-app/relasi-core/pkg/runtime/terminal/commands"

	"github.com/spf13/cobra"
)

// CLI is the offline report tool: it renders PDF artifacts from raw report
// payload files without touching the backend.
type CLI struct {
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{}
	cli.rootCmd = cli.newRootCmd(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relasi",
		Short: "Relasi report tooling",
	}

	cmd.AddCommand(commands.NewGenerateCmd(out))
	cmd.AddCommand(commands.NewOutlineCmd(out))

	return cmd
}
