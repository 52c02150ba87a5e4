// Copyright 2025 cons0leweb
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/cons0leweb/fsutils/cmd/fsutils/opts"
	"github.com/cons0leweb/fsutils/pkg/config"
	"github.com/cons0leweb/fsutils/pkg/oplog"
)

var (
	// Flags
	configFile string
	debug      bool
)

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "fsutils_config.json", "config file path")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// setupRoot configures logging and populates the shared options once flags
// are parsed. Runs before every subcommand.
func setupRoot(cmd *cobra.Command, rootOpts *opts.RootOpts) error {
	setupLogging()
	ctx := cmd.Context()

	cfg, err := config.Load(ctx, configFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	sink, err := oplog.New(cfg.LogFile, *zerolog.Ctx(ctx))
	if err != nil {
		return errors.Errorf("opening operation log: %w", err)
	}

	rootOpts.Config = cfg
	rootOpts.ConfigPath = configFile
	rootOpts.Sink = sink
	return nil
}

// teardownRoot persists recent-folder history and closes the log sink.
func teardownRoot(ctx context.Context, rootOpts *opts.RootOpts) {
	if rootOpts.Config != nil {
		if err := config.Save(ctx, rootOpts.ConfigPath, rootOpts.Config); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("could not save config")
		}
	}
	if rootOpts.Sink != nil {
		if err := rootOpts.Sink.Close(); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("could not close operation log")
		}
	}
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}
