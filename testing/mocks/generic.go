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
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/optakt/hashchain/models/chain"
)

// Global variables that can be used for testing. They are non-nil valid values for the types commonly needed
// to test node components.
var (
	NoopLogger = zerolog.New(io.Discard)

	GenericError = errors.New("dummy error")

	GenericProof = uint64(35293)

	GenericHash = "4d2c5e1d9a4f9b1b7f1e3f2c6a7d8e9f0a1b2c3d4e5f60718293a4b5c6d7e8f9"

	GenericNodeID = "3a9f1c0e6b2d4f8a9c7e5b1d3f2a4c6e"

	GenericTimestamp = float64(90393255.000016)

	GenericTransactions = []chain.Transaction{
		{Sender: "alice", Recipient: "bob", Amount: 10},
		{Sender: "bob", Recipient: "carol", Amount: 5},
	}

	GenericBlocks = []chain.Block{
		{
			Index:        chain.GenesisIndex,
			Timestamp:    GenericTimestamp,
			Transactions: []chain.Transaction{},
			Proof:        chain.GenesisProof,
			PreviousHash: chain.GenesisPreviousHash,
		},
		{
			Index:        chain.GenesisIndex + 1,
			Timestamp:    GenericTimestamp + 1,
			Transactions: GenericTransactions,
			Proof:        GenericProof,
			PreviousHash: GenericHash,
		},
	}
)

// GenericAddress returns a deterministic peer address for the given index.
func GenericAddress(index int) string {
	return fmt.Sprintf("127.0.0.1:%d", 5001+index)
}

// GenericAddresses returns the given number of deterministic peer addresses.
func GenericAddresses(number int) []string {
	addresses := make([]string, 0, number)
	for i := 0; i < number; i++ {
		addresses = append(addresses, GenericAddress(i))
	}
	return addresses
}
