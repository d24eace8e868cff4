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

package node

import (
	"context"

	"github.com/optakt/hashchain/models/chain"
)

// Ledger is the local ledger the node API reads from and writes to.
type Ledger interface {
	NewBlock(proof uint64, previousHash ...string) chain.Block
	NewTransaction(sender string, recipient string, amount int64) uint64
	Hash(block chain.Block) string
	Chain() []chain.Block
	LastBlock() chain.Block
	Pending() []chain.Transaction
}

// Miner finds a proof of work for the given last proof.
type Miner interface {
	SolveContext(ctx context.Context, lastProof uint64) (uint64, error)
}

// Resolver reconciles the local chain with the chains of known peers.
type Resolver interface {
	Resolve(ctx context.Context) bool
}

// Peers is the set of known peer addresses.
type Peers interface {
	Register(address string)
	List() []string
}
