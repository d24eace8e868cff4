// Copyright 2021 Optakt Labs OÜ
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/ziflex/lecho/v2"

	"github.com/optakt/hashchain/api/node"
	"github.com/optakt/hashchain/service/consensus"
	"github.com/optakt/hashchain/service/ledger"
	"github.com/optakt/hashchain/service/metrics"
	"github.com/optakt/hashchain/service/pow"
)

const (
	success = 0
	failure = 1
)

func main() {
	os.Exit(run())
}

func run() int {

	// Signal catching for clean shutdown.
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)

	// Command line parameter initialization.
	var (
		flagDifficulty uint
		flagInterval   time.Duration
		flagLevel      string
		flagMetrics    string
		flagPeers      []string
		flagPort       uint16
		flagTimeout    time.Duration
	)

	pflag.UintVarP(&flagDifficulty, "difficulty", "d", pow.DefaultConfig.Difficulty, "number of leading zero hex characters required in proof digests")
	pflag.DurationVarP(&flagInterval, "interval", "i", 0, "interval between automatic consensus rounds (0 disables them)")
	pflag.StringVarP(&flagLevel, "level", "l", "info", "log output level")
	pflag.StringVarP(&flagMetrics, "metrics", "m", "", "address on which to expose Prometheus metrics (empty disables them)")
	pflag.StringSliceVar(&flagPeers, "peers", nil, "peer node addresses to register at startup")
	pflag.Uint16VarP(&flagPort, "port", "p", 5000, "port to listen on")
	pflag.DurationVarP(&flagTimeout, "timeout", "t", consensus.DefaultConfig.Timeout, "timeout for fetching the chain of a single peer")

	pflag.Parse()

	// Logger initialization.
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	log := zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	level, err := zerolog.ParseLevel(flagLevel)
	if err != nil {
		log.Error().Str("level", flagLevel).Err(err).Msg("could not parse log level")
		return failure
	}
	log = log.Level(level)
	elog := lecho.From(log)

	// The node identifier only serves as recipient for mining rewards.
	nodeID := strings.ReplaceAll(uuid.New().String(), "-", "")

	peers := consensus.NewPeers()
	for _, peer := range flagPeers {
		address, err := node.ParseAddress(peer)
		if err != nil {
			log.Error().Str("peer", peer).Err(err).Msg("could not parse peer address")
			return failure
		}
		peers.Register(address)
	}

	// Core initialization. The metrics wrappers are always in place; the
	// registry is only exposed if a metrics address is configured.
	registry := prometheus.NewRegistry()
	engine := pow.New(pow.WithDifficulty(flagDifficulty))
	local := ledger.New(log, engine)
	client := node.NewClient(&http.Client{})
	resolver := consensus.New(log, local, peers, client, consensus.WithTimeout(flagTimeout))
	ctrl := node.NewController(
		log,
		metrics.NewLedger(local, registry),
		engine,
		metrics.NewResolver(resolver, registry),
		peers,
		nodeID,
	)

	server := echo.New()
	server.HideBanner = true
	server.HidePort = true
	server.Logger = elog
	server.Use(lecho.Middleware(lecho.Config{Logger: elog}))
	server.Use(middleware.Recover())
	ctrl.Register(server)

	var monitor *metrics.Server
	if flagMetrics != "" {
		monitor = metrics.NewServer(log, flagMetrics, registry)
	}

	// This section launches the main executing components in their own
	// goroutine, so they can run concurrently. Afterwards, we wait for an
	// interrupt signal in order to proceed with the next section.
	done := make(chan struct{})
	failed := make(chan struct{})
	go func() {
		log.Info().Str("node", nodeID).Uint16("port", flagPort).Int("peers", peers.Len()).Msg("hashchain node starting")
		err := server.Start(fmt.Sprint(":", flagPort))
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn().Err(err).Msg("hashchain node failed")
			close(failed)
		} else {
			close(done)
		}
		log.Info().Msg("hashchain node stopped")
	}()

	if monitor != nil {
		go func() {
			err := monitor.Start()
			if err != nil {
				log.Warn().Err(err).Msg("metrics server failed")
			}
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if flagInterval > 0 {
		go reconcile(ctx, log, ctrl, flagInterval)
	}

	select {
	case <-sig:
		log.Info().Msg("hashchain node stopping")
	case <-done:
		log.Info().Msg("hashchain node done")
	case <-failed:
		log.Warn().Msg("hashchain node aborted")
		return failure
	}
	go func() {
		<-sig
		log.Warn().Msg("forcing exit")
		os.Exit(1)
	}()

	// The following code starts a shut down with a certain timeout and makes
	// sure that the main executing components are shutting down within the
	// allocated shutdown time. Otherwise, we will force the shutdown and log
	// an error.
	cancel()
	shutdown, stop := context.WithTimeout(context.Background(), 30*time.Second)
	defer stop()
	err = server.Shutdown(shutdown)
	if err != nil {
		log.Error().Err(err).Msg("could not shut down node API")
		return failure
	}
	if monitor != nil {
		err = monitor.Stop(shutdown)
		if err != nil {
			log.Error().Err(err).Msg("could not shut down metrics server")
			return failure
		}
	}

	return success
}

// reconcile runs a consensus round on every tick until the context is done.
func reconcile(ctx context.Context, log zerolog.Logger, ctrl *node.Controller, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			replaced := ctrl.Reconcile(ctx)
			log.Debug().Bool("replaced", replaced).Msg("periodic consensus round completed")
		}
	}
}
