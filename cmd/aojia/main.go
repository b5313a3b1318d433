// Command aojia drives the AoJia automation object from the command line.
//
//	aojia --loader ARegJ64.dll --provider AoJia64.dll version
//	aojia call GetClientSize 1234
//	aojia call GetColor 10 20 out:color
//	aojia repl
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	aojia "github.com/smnsjas/go-aojia"
	"github.com/smnsjas/go-aojia/config"
)

type globalFlags struct {
	configPath string
	loader     string
	library    string
	clsid      string
	resolve    string
	logLevel   string
}

func main() {
	var flags globalFlags

	root := &cobra.Command{
		Use:           "aojia",
		Short:         "Call the AoJia automation object",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "path to a YAML configuration file")
	pf.StringVar(&flags.loader, "loader", "", "provider loader library, e.g. ARegJ64.dll")
	pf.StringVar(&flags.library, "provider", "", "provider library, e.g. AoJia64.dll")
	pf.StringVar(&flags.clsid, "clsid", "", "CLSID of the automation object")
	pf.StringVar(&flags.resolve, "resolve", "", "method id resolution: cache or per-call")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		versionCmd(&flags),
		machineCodeCmd(&flags),
		osCmd(&flags),
		cpuCmd(&flags),
		methodsCmd(),
		callCmd(&flags),
		replCmd(&flags),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration file, if any, and applies flags over it.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	cfg := config.Default()
	if flags.configPath != "" {
		var err error
		if cfg, err = config.Load(flags.configPath); err != nil {
			return nil, err
		}
	}
	if flags.loader != "" {
		cfg.Provider.Loader = flags.loader
	}
	if flags.library != "" {
		cfg.Provider.Library = flags.library
	}
	if flags.clsid != "" {
		cfg.CLSID = flags.clsid
	}
	if flags.resolve != "" {
		cfg.Resolve = flags.resolve
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openClient opens a client on the calling goroutine, which stays locked to
// its OS thread until the client is closed.
func openClient(flags *globalFlags) (*aojia.Client, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}
	lvl, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))

	sc, err := cfg.SessionConfig(logger)
	if err != nil {
		return nil, err
	}
	return aojia.New(sc)
}

// withClient runs fn against a freshly opened client and closes it.
func withClient(flags *globalFlags, fn func(c *aojia.Client) error) error {
	c, err := openClient(flags)
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(c)
}
