package reportcli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/okian/stride/internal/config"
)

// NewCommand builds the report command tree. load is called once flags are
// parsed, so configuration errors surface as command errors.
func NewCommand(load func() (*config.Config, error)) *cobra.Command {
	opts := Options{Section: SectionAll, Timeout: DefaultTimeout}

	root := &cobra.Command{
		Use:   "report",
		Short: "Print athlete dashboard views as JSON",
		Long: "report builds the dashboard views from the configured data provider and prints them as JSON.\n" +
			"With --url the views are fetched from a running server instead.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			return Run(cmd.Context(), cfg, opts, cmd.OutOrStdout())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.FixturesPath, "fixtures", "", "YAML fixture file to read instead of the built-in demo data")
	pf.StringVar(&opts.URL, "url", "", "base URL of a running server, e.g. http://localhost:9080")
	pf.DurationVar(&opts.Timeout, "timeout", DefaultTimeout, "HTTP request timeout in --url mode")
	pf.BoolVar(&opts.Compact, "compact", false, "print JSON on one line")
	root.Flags().StringVarP(&opts.Section, "section", "s", SectionAll,
		"view to print: "+strings.Join(Sections, "|"))

	critique := &cobra.Command{
		Use:   "critique IMAGE",
		Short: "Critique the running form in one practice frame",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			return Critique(cmd.Context(), cfg, opts, args[0], cmd.OutOrStdout())
		},
	}
	critique.Flags().DurationVar(&opts.PollInterval, "poll", DefaultPollInterval, "job poll interval in --url mode")
	critique.Flags().DurationVar(&opts.Wait, "wait", DefaultWait, "how long to wait for the critique in --url mode")
	root.AddCommand(critique)

	return root
}
