package cli

import (
	"github.com/spf13/cobra"

	"tlog/internal/app/errors"
)

// CommandType represents the type of CLI command
type CommandType int

// Command type values
const (
	CommandDefault CommandType = iota
	CommandPipe
	CommandRun
	CommandTail
	CommandListen
	CommandSend
	CommandInit
	CommandVersion
	CommandHelp
)

// Options contains the parsed command-line arguments
type Options struct {
	Type      CommandType
	Target    string // plan file, tailed file, listen address or send URL
	Text      string
	Color     string
	Important *bool // nil lets the listener's rules decide
	Clear     bool
	Plan      bool
	Force     bool
	DryRun    bool
	NoUI      bool
}

// Parse parses command-line args into Options
func Parse(args []string) (*Options, error) {
	result := &Options{Type: CommandDefault}

	var version bool

	root := buildRootCommand(result, &version)
	root.AddCommand(
		buildPipeCommand(result),
		buildRunCommand(result),
		buildTailCommand(result),
		buildListenCommand(result),
		buildSendCommand(result),
		buildInitCommand(result),
		buildVersionCommand(result),
	)

	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		return nil, err
	}

	if version {
		result.Type = CommandVersion
	}

	return result, nil
}

// buildRootCommand creates the root cobra command
func buildRootCommand(result *Options, version *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tlog",
		Short: "A terminal viewer for test logs",
		Long: `tlog shows test output as a scrolling, colored log. Lines come from
a pipe, a followed file, a test plan, or other processes over a websocket.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandDefault
		},
	}

	cmd.PersistentFlags().BoolVar(&result.NoUI, "no-ui", false, "Print lines to stdout instead of the TUI")
	cmd.Flags().BoolVarP(version, "version", "v", false, "Show version information")

	cmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		result.Type = CommandHelp
	})

	return cmd
}

// buildPipeCommand creates the pipe subcommand
func buildPipeCommand(result *Options) *cobra.Command {
	return &cobra.Command{
		Use:     "pipe",
		Aliases: []string{"p"},
		Short:   "Read lines from stdin",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandPipe
		},
	}
}

// buildRunCommand creates the run subcommand
func buildRunCommand(result *Options) *cobra.Command {
	return &cobra.Command{
		Use:     "run [plan]",
		Aliases: []string{"r"},
		Short:   "Run a test plan",
		Args:    cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandRun
			if len(args) > 0 {
				result.Target = args[0]
			}
		},
	}
}

// buildTailCommand creates the tail subcommand
func buildTailCommand(result *Options) *cobra.Command {
	return &cobra.Command{
		Use:     "tail <file>",
		Aliases: []string{"t"},
		Short:   "Follow a file",
		Args:    cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandTail
			result.Target = args[0]
		},
	}
}

// buildListenCommand creates the listen subcommand
func buildListenCommand(result *Options) *cobra.Command {
	return &cobra.Command{
		Use:     "listen [address]",
		Aliases: []string{"l"},
		Short:   "Accept log lines from other processes over a websocket",
		Args:    cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandListen
			if len(args) > 0 {
				result.Target = args[0]
			}
		},
	}
}

// buildSendCommand creates the send subcommand
func buildSendCommand(result *Options) *cobra.Command {
	var important bool

	cmd := &cobra.Command{
		Use:   "send <url> [text]",
		Short: "Send one line to a listening tlog",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			result.Type = CommandSend
			result.Target = args[0]

			if len(args) > 1 {
				result.Text = args[1]
			}

			if result.Text == "" && !result.Clear {
				return errors.ErrTextRequired
			}

			if cmd.Flags().Changed("important") {
				result.Important = &important
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&result.Color, "color", "c", "", "Line color, a name or #rrggbb")
	cmd.Flags().BoolVarP(&important, "important", "i", false, "Emphasize the line")
	cmd.Flags().BoolVar(&result.Clear, "clear", false, "Clear the remote log instead of sending a line")

	return cmd
}

// buildInitCommand creates the init subcommand
func buildInitCommand(result *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a tlog.yaml template",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandInit
		},
	}

	cmd.Flags().BoolVar(&result.Plan, "plan", false, "Also write a sample plan.toml")
	cmd.Flags().BoolVarP(&result.Force, "force", "f", false, "Overwrite existing files")
	cmd.Flags().BoolVar(&result.DryRun, "dry-run", false, "Print instead of writing")

	return cmd
}

// buildVersionCommand creates the version subcommand
func buildVersionCommand(result *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandVersion
		},
	}
}
