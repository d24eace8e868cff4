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

package consensus

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/optakt/hashchain/models/chain"
)

// Resolver reconciles the local ledger with the ledgers of known peers by
// adopting the longest valid chain, as long as it is strictly longer than the
// local one.
type Resolver struct {
	log     zerolog.Logger
	ledger  Ledger
	peers   *Peers
	fetch   Fetcher
	timeout time.Duration
}

// New creates a resolver for the given ledger and peer set.
func New(log zerolog.Logger, ledger Ledger, peers *Peers, fetch Fetcher, options ...func(*Config)) *Resolver {

	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	r := Resolver{
		log:     log.With().Str("component", "consensus_resolver").Logger(),
		ledger:  ledger,
		peers:   peers,
		fetch:   fetch,
		timeout: cfg.Timeout,
	}

	return &r
}

// Resolve queries every known peer for its chain and replaces the local chain
// with the longest valid one that is strictly longer. Peers that cannot be
// reached or return an invalid chain are skipped. It returns whether the local
// chain was replaced.
func (r *Resolver) Resolve(ctx context.Context) bool {

	addresses := r.peers.List()
	if len(addresses) == 0 {
		r.log.Debug().Msg("no peers to resolve with")
		return false
	}

	// Each peer gets its own slot, so the outcome does not depend on the
	// order in which the peers answer.
	responses := make([]*chain.Response, len(addresses))
	var errs *multierror.Error
	var mutex sync.Mutex

	group, ctx := errgroup.WithContext(ctx)
	for i, address := range addresses {
		i, address := i, address
		group.Go(func() error {
			res, err := r.query(ctx, address)
			if err != nil {
				mutex.Lock()
				errs = multierror.Append(errs, err)
				mutex.Unlock()
				return nil
			}
			responses[i] = res
			return nil
		})
	}
	_ = group.Wait()

	if errs.ErrorOrNil() != nil {
		r.log.Warn().Err(errs).Int("skipped", errs.Len()).Msg("could not query all peers")
	}

	maxLength := r.ledger.Length()
	var candidate []chain.Block
	for i, res := range responses {
		if res == nil {
			continue
		}

		log := r.log.With().Str("peer", addresses[i]).Int("length", res.Length).Logger()

		if res.Length != len(res.Chain) {
			log.Debug().Int("blocks", len(res.Chain)).Msg("skipping peer with inconsistent length")
			continue
		}
		if res.Length <= maxLength {
			log.Debug().Int("local", maxLength).Msg("skipping peer without longer chain")
			continue
		}
		if !r.ledger.ValidateChain(res.Chain) {
			log.Debug().Msg("skipping peer with invalid chain")
			continue
		}

		maxLength = res.Length
		candidate = res.Chain
	}

	if candidate == nil {
		r.log.Info().Int("peers", len(addresses)).Msg("local chain is authoritative")
		return false
	}

	// The ledger might have grown while we were querying peers, so it checks
	// again that the candidate is longer before swapping it in.
	replaced := r.ledger.Replace(candidate)
	if !replaced {
		r.log.Info().Int("length", len(candidate)).Msg("candidate chain outgrown by local chain")
		return false
	}

	r.log.Info().Int("length", len(candidate)).Msg("local chain replaced")

	return true
}

func (r *Resolver) query(ctx context.Context, address string) (*chain.Response, error) {

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.fetch.Chain(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("could not fetch chain from %s: %w", address, err)
	}

	return res, nil
}
