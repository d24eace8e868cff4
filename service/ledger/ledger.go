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

package ledger

import (
	"sync"
	"time"

	"github.com/gammazero/deque"
	"github.com/rs/zerolog"

	"github.com/optakt/hashchain/models/chain"
)

// Ledger holds the chain of sealed blocks and the buffer of transactions
// waiting for the next block. A single lock covers both, so sealing a block,
// submitting a transaction and replacing the chain never interleave.
type Ledger struct {
	log    zerolog.Logger
	verify Verifier
	clock  func() time.Time

	mutex   *sync.RWMutex
	blocks  []chain.Block
	pending *deque.Deque
}

// New creates a ledger that contains only the genesis block.
func New(log zerolog.Logger, verify Verifier, options ...func(*Config)) *Ledger {

	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	l := Ledger{
		log:     log.With().Str("component", "ledger").Logger(),
		verify:  verify,
		clock:   cfg.Clock,
		mutex:   &sync.RWMutex{},
		blocks:  make([]chain.Block, 0, 1),
		pending: deque.New(),
	}

	l.NewBlock(chain.GenesisProof, chain.GenesisPreviousHash)

	return &l
}

// NewBlock seals all pending transactions into a new block and appends it to
// the chain. Without a previous hash, the hash of the current last block is
// used. The proof is not checked; callers are expected to obtain it from the
// proof-of-work engine.
func (l *Ledger) NewBlock(proof uint64, previousHash ...string) chain.Block {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	var parent string
	if len(previousHash) > 0 && previousHash[0] != "" {
		parent = previousHash[0]
	} else {
		parent = Hash(l.blocks[len(l.blocks)-1])
	}

	transactions := make([]chain.Transaction, 0, l.pending.Len())
	for l.pending.Len() > 0 {
		transactions = append(transactions, l.pending.PopFront().(chain.Transaction))
	}

	block := chain.Block{
		Index:        uint64(len(l.blocks)) + 1,
		Timestamp:    chain.Timestamp(l.clock()),
		Transactions: transactions,
		Proof:        proof,
		PreviousHash: parent,
	}
	l.blocks = append(l.blocks, block)

	l.log.Debug().
		Uint64("index", block.Index).
		Time("timestamp", block.Time()).
		Uint64("proof", block.Proof).
		Int("transactions", len(block.Transactions)).
		Str("previous_hash", block.PreviousHash).
		Msg("block sealed")

	return clone(block)
}

// NewTransaction adds a transaction to the pending buffer and returns the
// index of the block it will be sealed in. Field values are not validated.
func (l *Ledger) NewTransaction(sender string, recipient string, amount int64) uint64 {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	tx := chain.Transaction{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
	}
	l.pending.PushBack(tx)

	index := l.blocks[len(l.blocks)-1].Index + 1

	l.log.Debug().
		Str("sender", sender).
		Str("recipient", recipient).
		Int64("amount", amount).
		Uint64("block", index).
		Msg("transaction submitted")

	return index
}

// Hash returns the canonical hash of the block.
func (l *Ledger) Hash(block chain.Block) string {
	return Hash(block)
}

// ValidateChain checks that every block links to the hash of the block before
// it and carries a valid proof of work for that block's proof. Chains with
// fewer than two blocks are trivially valid.
func (l *Ledger) ValidateChain(candidate []chain.Block) bool {
	for i := 1; i < len(candidate); i++ {
		prev := candidate[i-1]
		curr := candidate[i]

		if curr.PreviousHash != Hash(prev) {
			l.log.Debug().Int("position", i).Uint64("index", curr.Index).Msg("previous hash mismatch")
			return false
		}

		if !l.verify.Valid(prev.Proof, curr.Proof) {
			l.log.Debug().Int("position", i).Uint64("index", curr.Index).Msg("invalid proof of work")
			return false
		}
	}

	return true
}

// Replace swaps the local chain for the candidate if the candidate is
// strictly longer, and reports whether it did. The length comparison and the
// swap happen under the same lock. The candidate is expected to be validated.
func (l *Ledger) Replace(candidate []chain.Block) bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if len(candidate) <= len(l.blocks) {
		return false
	}

	blocks := make([]chain.Block, 0, len(candidate))
	for _, block := range candidate {
		blocks = append(blocks, clone(block))
	}
	l.blocks = blocks

	l.log.Info().
		Int("length", len(blocks)).
		Uint64("last_proof", blocks[len(blocks)-1].Proof).
		Msg("chain replaced")

	return true
}

// Chain returns a copy of the sealed blocks, from genesis to tip.
func (l *Ledger) Chain() []chain.Block {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	blocks := make([]chain.Block, 0, len(l.blocks))
	for _, block := range l.blocks {
		blocks = append(blocks, clone(block))
	}

	return blocks
}

// LastBlock returns the tip of the chain.
func (l *Ledger) LastBlock() chain.Block {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return clone(l.blocks[len(l.blocks)-1])
}

// Length returns the number of blocks in the chain.
func (l *Ledger) Length() int {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return len(l.blocks)
}

// Pending returns a copy of the transactions waiting for the next block, in
// submission order.
func (l *Ledger) Pending() []chain.Transaction {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	transactions := make([]chain.Transaction, 0, l.pending.Len())
	for i := 0; i < l.pending.Len(); i++ {
		transactions = append(transactions, l.pending.At(i).(chain.Transaction))
	}

	return transactions
}

// clone returns a block that shares no transaction storage with the original,
// so sealed blocks cannot be changed through the values handed out.
func clone(block chain.Block) chain.Block {
	transactions := make([]chain.Transaction, len(block.Transactions))
	copy(transactions, block.Transactions)
	block.Transactions = transactions
	return block
}
