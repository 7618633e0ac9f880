package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/0x0BSoD/featfeed/internal/network"
)

func pingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping <feature> <path>",
		Short: "Issue a GET through the feature's network client and print the status code",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.close()

			svc, err := a.catalog.Get(args[0])
			if err != nil {
				return err
			}

			code, err := svc.Ping(cmd.Context(), args[1])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), code)
			return nil
		},
	}
}

func featuresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "features",
		Short: "List configured features",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			// Listing needs names only; the fake backends keep it offline.
			catalog, err := newCatalog(cfg, network.NewFakeAPI(), network.NewFakeClient())
			if err != nil {
				return err
			}

			for _, name := range catalog.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
