package cli

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/idelchi/dirsize/internal/config"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// Execute runs the CLI with the process arguments.
func (c CLI) Execute() error {
	return c.Command().Execute()
}

// Command builds the root command.
func (c CLI) Command() *cobra.Command {
	var (
		options    = config.Default()
		configFile string
	)

	cmd := &cobra.Command{
		Use:   "dirsize [flags] [path]",
		Short: "Compute the total size of a directory tree",
		Long: heredoc.Doc(`
			dirsize computes the total size of all files below a directory.

			The tree is walked by a fixed pool of workers sharing one work queue.
			Each worker sums the files directly inside a directory and hands its
			subdirectories back to the pool. Unreadable directories are skipped
			and reported as errors.

			Positional Arguments:
			  path    Directory to analyze. Defaults to the current directory.

			Settings may also be read from a YAML file with --config. Flags given
			on the command line take precedence over the file.
		`),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if options.Version {
				fmt.Fprintln(cmd.OutOrStdout(), c.version)

				return nil
			}

			resolved, err := resolve(cmd.Flags(), options, configFile)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				resolved.Path = args[0]
			}

			if err := resolved.Validate(); err != nil {
				return err
			}

			return logic(resolved, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.SortFlags = false
	bindFlags(flags, &options)
	flags.StringVar(&configFile, "config", "", "Path to a YAML configuration file")

	return cmd
}

// bindFlags registers the configuration flags on flags.
func bindFlags(flags *pflag.FlagSet, options *config.Config) {
	flags.IntVarP(&options.Workers, "workers", "w", options.Workers, "Number of concurrent workers")
	flags.IntVarP(&options.Top, "top", "t", options.Top, "Number of largest directories to display (0=none)")
	flags.StringVarP(&options.Output, "output", "o", options.Output, "Output format: json or table")
	flags.BoolVar(&options.FollowSymlinks, "follow", options.FollowSymlinks, "Follow symbolic links")
	flags.StringVar(&options.LogLevel, "log-level", options.LogLevel, "Log level: trace, debug, info, warn or error")
	flags.BoolVarP(&options.Version, "version", "v", false, "Show version and exit")
}

// resolve layers explicitly set flags over the configuration file, if any.
func resolve(flags *pflag.FlagSet, options config.Config, configFile string) (config.Config, error) {
	if configFile == "" {
		return options, nil
	}

	resolved, err := config.Load(configFile)
	if err != nil {
		return config.Config{}, err
	}

	resolved.Path = options.Path

	flags.Visit(func(flag *pflag.Flag) {
		switch flag.Name {
		case "workers":
			resolved.Workers = options.Workers
		case "top":
			resolved.Top = options.Top
		case "output":
			resolved.Output = options.Output
		case "follow":
			resolved.FollowSymlinks = options.FollowSymlinks
		case "log-level":
			resolved.LogLevel = options.LogLevel
		}
	})

	return resolved, nil
}
