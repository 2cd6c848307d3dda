package main

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"thermometer-go/platform"
	"thermometer-go/services/config"
	"thermometer-go/services/poller"
	"thermometer-go/x/logx"
)

// Commit is set at link time.
var Commit string

// openSystem is swapped in tests.
var openSystem = platform.OpenHost

type options struct {
	v       *viper.Viper
	config  string
	sim     int
	logFile string
	verbose bool
}

func newRootCmd() *cobra.Command {
	o := &options{v: viper.New()}

	root := &cobra.Command{
		Use:           "thermometer",
		Short:         "Poll DS18B20 thermometers and post readings to InfluxDB",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&o.config, "config", "", "config file (yaml, json or toml)")
	pf.String("server", "", "database host:port")
	pf.String("database", "", "database name")
	pf.Duration("interval", 0, "poll interval")
	pf.String("iface", "", "network interface to watch; empty disables the link check")
	pf.String("led", "", "status LED GPIO name")
	pf.String("bus", "", "1-wire bus name; empty opens the first")
	pf.IntVar(&o.sim, "sim", 0, "simulate this many sensors instead of opening a bus")
	pf.StringVar(&o.logFile, "log-file", "", "write JSON logs to this rotating file instead of stderr")
	pf.BoolVarP(&o.verbose, "verbose", "v", false, "verbose output")
	for _, name := range []string{"server", "database", "interval", "iface", "led", "bus"} {
		_ = o.v.BindPFlag(name, pf.Lookup(name))
	}

	root.AddCommand(newRunCmd(o), newOnceCmd(o), newScanCmd(o), versionCmd)
	return root
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), Commit)
	},
}

// setup loads configuration and opens the host. Callers Close the system.
func (o *options) setup(cmd *cobra.Command, hopts platform.HostOptions) (config.Config, logr.Logger, *platform.System, error) {
	log := logx.New(logx.Options{
		Verbose: o.verbose,
		File:    o.logFile,
		Out:     cmd.ErrOrStderr(),
	})

	cfg, err := config.Load(o.v, o.config)
	if err != nil {
		return cfg, log, nil, err
	}
	hopts.Sim = o.sim

	sys, err := openSystem(cfg, log, hopts)
	if err != nil {
		if sys != nil {
			_ = sys.Close()
		}
		return cfg, log, nil, err
	}
	return cfg, log, sys, nil
}

func newService(cfg config.Config, log logr.Logger, sys *platform.System) *poller.Service {
	return poller.New(poller.Config{Interval: cfg.PollInterval}, sys.Deps(log.WithName("poller")))
}
