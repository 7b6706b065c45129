package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/phonedata/internal/cliconfig"
	"github.com/bft-labs/phonedata/pkg/log"
	"github.com/bft-labs/phonedata/pkg/phonedata"
)

const longHelp = `Look up province, city, zip code, area code and carrier for Chinese mobile
numbers using a phone.dat database.

Settings are read from $HOME/.phonedata/config.toml, then PHONEDATA_* environment
variables, then flags; later sources win.`

var exampleUsage = strings.TrimSpace(`
  phonedata lookup 13800138000 1591234
  phonedata --data-file /srv/phone.dat --format json lookup 13800138000
  phonedata shell --watch < numbers.txt
  phonedata info
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// app carries resolved configuration to subcommands.
type app struct {
	cfg    cliconfig.Config
	log    zerolog.Logger
	stderr io.Writer
}

// loadDatabase loads the configured data file.
func (a *app) loadDatabase() (*phonedata.Database, error) {
	return a.load(a.cfg.DataFile)
}

func (a *app) load(path string) (*phonedata.Database, error) {
	db, err := phonedata.Load(path, a.cfg.LoadOptions(log.NewZerologAdapter(a.log))...)
	if err != nil {
		return nil, fmt.Errorf("load database: %w", err)
	}
	return db, nil
}

func newApp(stderr io.Writer) *app {
	return &app{
		cfg:    cliconfig.DefaultConfig(),
		log:    cliconfig.Logger(stderr, zerolog.InfoLevel.String()),
		stderr: stderr,
	}
}

func newRootCommand(a *app) *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:           "phonedata",
		Short:         "Resolve Chinese mobile numbers to region and carrier",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s (format %s) %s/%s", getVersion(), phonedata.Version, runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&a.cfg, fc, changed); err != nil {
					return err
				}
			}

			if err := cliconfig.ApplyEnvConfig(&a.cfg, changed); err != nil {
				return err
			}

			if err := a.cfg.Validate(); err != nil {
				return err
			}

			a.log = cliconfig.Logger(a.stderr, a.cfg.LogLevel)
			a.log.Debug().Interface("config", a.cfg).Msg("configuration")
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.phonedata/config.toml)")
	flags.StringVar(&a.cfg.DataFile, "data-file", a.cfg.DataFile, "path to the phone.dat database (gzip or zstd compressed files are accepted)")
	flags.StringVar(&a.cfg.Format, "format", a.cfg.Format, "output format: text or json")
	flags.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level: debug, info, warn, error")
	flags.BoolVar(&a.cfg.StrictIndex, "strict-index", a.cfg.StrictIndex, "reject a database whose index ends with a partial entry")
	flags.BoolVar(&a.cfg.CheckSort, "check-sort", a.cfg.CheckSort, "verify index prefixes are ascending while loading")

	root.AddCommand(
		newLookupCommand(a),
		newShellCommand(a),
		newInfoCommand(a),
	)
	return root
}

func main() {
	a := newApp(os.Stderr)
	if err := newRootCommand(a).Execute(); err != nil {
		a.log.Error().Err(err).Msg("phonedata")
		os.Exit(1)
	}
}
