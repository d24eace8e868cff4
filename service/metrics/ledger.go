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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/optakt/hashchain/models/chain"
)

// ChainLedger is the part of the ledger that the node API uses.
type ChainLedger interface {
	NewBlock(proof uint64, previousHash ...string) chain.Block
	NewTransaction(sender string, recipient string, amount int64) uint64
	Hash(block chain.Block) string
	Chain() []chain.Block
	LastBlock() chain.Block
	Length() int
	Pending() []chain.Transaction
}

// Ledger wraps the ledger and records metrics for the blocks and transactions
// that pass through it.
type Ledger struct {
	ledger ChainLedger

	blocks       prometheus.Counter
	transactions prometheus.Counter
	sealed       prometheus.Counter
	height       prometheus.GaugeFunc
}

// NewLedger creates a new ledger wrapper that registers its metrics with the
// given registerer.
func NewLedger(ledger ChainLedger, registerer prometheus.Registerer) *Ledger {
	factory := promauto.With(registerer)

	blockOpts := prometheus.CounterOpts{
		Name: "sealed_blocks",
		Help: "the number of blocks sealed by this node",
	}
	blocks := factory.NewCounter(blockOpts)

	transactionOpts := prometheus.CounterOpts{
		Name: "submitted_transactions",
		Help: "the number of transactions submitted to this node",
	}
	transactions := factory.NewCounter(transactionOpts)

	sealedOpts := prometheus.CounterOpts{
		Name: "sealed_transactions",
		Help: "the number of transactions sealed into blocks by this node",
	}
	sealed := factory.NewCounter(sealedOpts)

	// Consensus replaces the chain behind this wrapper, so the length is read
	// from the ledger on every collection.
	heightOpts := prometheus.GaugeOpts{
		Name: "chain_length",
		Help: "the number of blocks in the local chain",
	}
	height := factory.NewGaugeFunc(heightOpts, func() float64 {
		return float64(ledger.Length())
	})

	l := Ledger{
		ledger: ledger,

		blocks:       blocks,
		transactions: transactions,
		sealed:       sealed,
		height:       height,
	}

	return &l
}

// NewBlock seals a new block and records it.
func (l *Ledger) NewBlock(proof uint64, previousHash ...string) chain.Block {
	block := l.ledger.NewBlock(proof, previousHash...)
	l.blocks.Inc()
	l.sealed.Add(float64(len(block.Transactions)))
	return block
}

// NewTransaction submits a transaction and records it.
func (l *Ledger) NewTransaction(sender string, recipient string, amount int64) uint64 {
	index := l.ledger.NewTransaction(sender, recipient, amount)
	l.transactions.Inc()
	return index
}

// Hash returns the canonical hash of the block.
func (l *Ledger) Hash(block chain.Block) string {
	return l.ledger.Hash(block)
}

// Chain returns the blocks of the chain.
func (l *Ledger) Chain() []chain.Block {
	return l.ledger.Chain()
}

// LastBlock returns the tip of the chain.
func (l *Ledger) LastBlock() chain.Block {
	return l.ledger.LastBlock()
}

// Pending returns the transactions waiting for the next block.
func (l *Ledger) Pending() []chain.Transaction {
	return l.ledger.Pending()
}
