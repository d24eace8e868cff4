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
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/optakt/hashchain/codec/canonical"
	"github.com/optakt/hashchain/models/chain"
)

var codec = canonical.NewCodec()

// Hash returns the hex encoded SHA-256 digest of the canonical encoding of the
// block. A block without transactions hashes the same whether its list is nil
// or empty.
func Hash(block chain.Block) string {

	if block.Transactions == nil {
		block.Transactions = []chain.Transaction{}
	}

	// Blocks are made only of strings, integers and floats, which always
	// encode, so a failure here means the codec itself is broken.
	data, err := codec.Encode(block)
	if err != nil {
		panic(fmt.Sprintf("could not encode block: %s", err))
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
