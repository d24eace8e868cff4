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

package mocks

import (
	"testing"

	"github.com/optakt/hashchain/models/chain"
)

type Ledger struct {
	NewBlockFunc       func(proof uint64, previousHash ...string) chain.Block
	NewTransactionFunc func(sender string, recipient string, amount int64) uint64
	HashFunc           func(block chain.Block) string
	ValidateChainFunc  func(candidate []chain.Block) bool
	ReplaceFunc        func(candidate []chain.Block) bool
	ChainFunc          func() []chain.Block
	LastBlockFunc      func() chain.Block
	LengthFunc         func() int
	PendingFunc        func() []chain.Transaction
}

func BaselineLedger(t *testing.T) *Ledger {
	t.Helper()

	l := Ledger{
		NewBlockFunc: func(proof uint64, previousHash ...string) chain.Block {
			return GenericBlocks[1]
		},
		NewTransactionFunc: func(string, string, int64) uint64 {
			return GenericBlocks[1].Index + 1
		},
		HashFunc: func(chain.Block) string {
			return GenericHash
		},
		ValidateChainFunc: func([]chain.Block) bool {
			return true
		},
		ReplaceFunc: func([]chain.Block) bool {
			return true
		},
		ChainFunc: func() []chain.Block {
			return GenericBlocks
		},
		LastBlockFunc: func() chain.Block {
			return GenericBlocks[1]
		},
		LengthFunc: func() int {
			return len(GenericBlocks)
		},
		PendingFunc: func() []chain.Transaction {
			return GenericTransactions
		},
	}

	return &l
}

func (l *Ledger) NewBlock(proof uint64, previousHash ...string) chain.Block {
	return l.NewBlockFunc(proof, previousHash...)
}

func (l *Ledger) NewTransaction(sender string, recipient string, amount int64) uint64 {
	return l.NewTransactionFunc(sender, recipient, amount)
}

func (l *Ledger) Hash(block chain.Block) string {
	return l.HashFunc(block)
}

func (l *Ledger) ValidateChain(candidate []chain.Block) bool {
	return l.ValidateChainFunc(candidate)
}

func (l *Ledger) Replace(candidate []chain.Block) bool {
	return l.ReplaceFunc(candidate)
}

func (l *Ledger) Chain() []chain.Block {
	return l.ChainFunc()
}

func (l *Ledger) LastBlock() chain.Block {
	return l.LastBlockFunc()
}

func (l *Ledger) Length() int {
	return l.LengthFunc()
}

func (l *Ledger) Pending() []chain.Transaction {
	return l.PendingFunc()
}
