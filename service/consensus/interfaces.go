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

	"github.com/optakt/hashchain/models/chain"
)

// Ledger is the local ledger the resolver reconciles with its peers.
type Ledger interface {
	Length() int
	ValidateChain(candidate []chain.Block) bool
	Replace(candidate []chain.Block) bool
}

// Fetcher retrieves the chain reported by the peer at the given address.
type Fetcher interface {
	Chain(ctx context.Context, address string) (*chain.Response, error)
}
