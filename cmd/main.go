// Copyright (c) 2024, 0x0BSoD. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
package main

import (
	"os"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/0x0BSoD/featfeed/internal/config"
)

var configPath string

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "featfeed",
		Short:        "Run and benchmark feature feed pipelines",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: ./config.hcl and friends)")

	root.AddCommand(serveCmd(), benchCmd(), showCmd(), pingCmd(), featuresCmd())
	return root
}

func loadConfig() (config.Config, error) {
	if configPath == "" {
		return config.Get(), nil
	}
	return config.Load(configPath)
}
