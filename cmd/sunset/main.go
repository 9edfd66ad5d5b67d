package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/sunset/internal/cliconfig"
	"github.com/bft-labs/sunset/pkg/log"
	"github.com/bft-labs/sunset/pkg/release"
	"github.com/bft-labs/sunset/pkg/tracker"
)

const helpBanner = `
 ____   _   _  _   _  ____   _____  _____
/ ___| | | | || \ | |/ ___| | ____||_   _|
\___ \ | | | ||  \| |\___ \ |  _|    | |
 ___) || |_| || | \  | ___) || |___   | |
|____/  \___/ |_| \_||____/ |_____|  |_|
`

const helpDescription = `
Track the deprecation lifecycle of a command-line tool's surface.

A policy file records, per feature, the release in which its deprecation was
announced, its audience tier, and optionally an explicit removal release or a
replacement. sunset answers "may this feature still be used at release N":
it still works, it works but warns, or its invocation is refused. Third-party
dependency transitions additionally carry an opt-in gate that keeps the old
code path reachable after the default removal.

The release counter comes from --release, or is derived from a 0.x semantic
version with --at-version (the minor version is the counter).
`

var longHelp = strings.TrimSpace(helpBanner) + "\n\n" + strings.TrimSpace(helpDescription)

var exampleUsage = strings.TrimSpace(`
  sunset check "op undo --what" --policy policy.toml --release 12
  sunset check git-subprocess-backend --policy policy.toml --release 27 --enable legacy-git-backend
  sunset list --policy policy.toml --at-version v0.34.1 --output json
  sunset lint --policy policy.toml
  sunset watch --policy policy.toml --release 12 --verbose
`)

// Exit codes follow the usual Unix lint-tool convention: 0 clean, 1 error
// (refused invocation, broken policy, I/O failure), 2 warnings only.
const (
	exitOK      = 0
	exitError   = 1
	exitWarning = 2
)

// cli carries the resolved configuration and the exit code subcommands
// decide on. RunE returning nil with a nonzero exit keeps cobra from
// printing usage for outcomes that are verdicts, not user mistakes.
type cli struct {
	cfg    cliconfig.Config
	logger zerolog.Logger
	exit   int
}

// tracker loads the policy file into a tracker pinned at the given release,
// with the host's gate set from --enable / SUNSET_GATES.
func (c *cli) tracker(at release.Number, extra ...tracker.Option) (*tracker.Tracker, error) {
	opts := append([]tracker.Option{
		tracker.WithLogger(log.NewZerologAdapterWithLogger(c.logger)),
		tracker.WithGates(tracker.EnabledGates(c.cfg.Gates...)),
		tracker.WithClock(at),
	}, extra...)
	return tracker.Load(c.cfg.PolicyPath, opts...)
}

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	c := &cli{cfg: cliconfig.DefaultConfig()}
	var cfgPath string

	root := &cobra.Command{
		Use:           "sunset",
		Short:         "Track the deprecation lifecycle of a CLI's commands, arguments, and dependencies",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default $HOME/.sunset/config.toml),
			// then env, with explicitly set flags winning over both.
			changed := map[string]bool{}
			cmd.Root().PersistentFlags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}
			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				cliconfig.ApplyFileConfig(&c.cfg, fc, changed)
			}

			if err := cliconfig.ApplyEnvConfig(&c.cfg, changed); err != nil {
				return err
			}

			if err := c.cfg.Validate(); err != nil {
				return err
			}

			c.logger = cliconfig.NewLogger(c.cfg.Verbose)
			c.logger.Debug().Interface("config", c.cfg).Msg("configuration")
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.sunset/config.toml)")
	pf.StringVar(&c.cfg.PolicyPath, "policy", "", "deprecation policy file (.toml, .yaml, or .yml)")
	pf.IntVar(&c.cfg.Release, "release", 0, "release counter to evaluate at")
	pf.StringVar(&c.cfg.Version, "at-version", "", "derive the release counter from a 0.x version (minor version is the counter)")
	pf.StringSliceVar(&c.cfg.Gates, "enable", nil, "opt-in gate to treat as enabled (repeatable)")
	pf.StringVar(&c.cfg.Output, "output", c.cfg.Output, "list output format: table or json")
	pf.BoolVar(&c.cfg.Verbose, "verbose", false, "log policy loads and registry swaps")

	root.AddCommand(
		newCheckCmd(c),
		newListCmd(c),
		newLintCmd(c),
		newWatchCmd(c),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitError)
	}
	os.Exit(c.exit)
}
