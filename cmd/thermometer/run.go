package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"thermometer-go/errcode"
	"thermometer-go/platform"
)

func newRunCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Poll and report until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, sys, err := o.setup(cmd, platform.HostOptions{})
			if err != nil {
				return err
			}
			defer sys.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			log.Info("starting", "endpoint", cfg.Endpoint(), "interval", cfg.PollInterval.String())
			svc := newService(cfg, log, sys)
			svc.Discover()

			err = svc.Run(ctx)
			if errors.Is(err, context.Canceled) {
				log.Info("stopped")
				return nil
			}
			return err
		},
	}
}

func newOnceCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "once",
		Short: "Run a single poll cycle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, sys, err := o.setup(cmd, platform.HostOptions{SkipLink: true})
			if err != nil {
				return err
			}
			defer sys.Close()

			svc := newService(cfg, log, sys)
			svc.Discover()
			st := svc.Cycle(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "devices %d sent %d failed %d ghosts %d read_errors %d\n",
				st.Devices, st.Sent, st.Failed, st.Ghosts, st.ReadErrors)
			if st.Failed > 0 {
				return &errcode.E{C: errcode.PostFailed, Op: "once", Msg: fmt.Sprintf("%d of %d posts failed", st.Failed, st.Devices)}
			}
			return nil
		},
	}
}

func newScanCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "List the thermometers on the bus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, sys, err := o.setup(cmd, platform.HostOptions{SkipLink: true})
			if err != nil {
				return err
			}
			defer sys.Close()

			n, err := sys.Bus.Enumerate()
			if err != nil && n == 0 {
				return err
			}
			out := cmd.OutOrStdout()
			for i := 0; i < n; i++ {
				addr, aerr := sys.Bus.AddressOf(i)
				if aerr != nil {
					fmt.Fprintf(out, "%d\tghost\t%s\n", i, errcode.Of(aerr))
					continue
				}
				fmt.Fprintf(out, "%d\t0x%s\n", i, addr)
			}
			return err
		},
	}
}
