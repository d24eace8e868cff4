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
	"github.com/optakt/hashchain/models/chain"
)

// TransactionRequest is the body of a transaction submission. Fields are
// pointers so that a missing field can be told apart from a zero value.
type TransactionRequest struct {
	Sender    *string `json:"sender" validate:"required"`
	Recipient *string `json:"recipient" validate:"required"`
	Amount    *int64  `json:"amount" validate:"required"`
}

// RegisterRequest is the body of a peer registration.
type RegisterRequest struct {
	Nodes []string `json:"nodes" validate:"required"`
}

// MineResponse describes a freshly forged block.
type MineResponse struct {
	Message      string              `json:"message"`
	Index        uint64              `json:"index"`
	Transactions []chain.Transaction `json:"transactions"`
	Proof        uint64              `json:"proof"`
	PreviousHash string              `json:"previous_hash"`
}

// MessageResponse carries a human readable message only.
type MessageResponse struct {
	Message string `json:"message"`
}

// RegisterResponse lists every known peer after a registration.
type RegisterResponse struct {
	Message    string   `json:"message"`
	TotalNodes []string `json:"total_nodes"`
}

// ReplacedResponse is returned when consensus replaced the local chain.
type ReplacedResponse struct {
	Message  string        `json:"message"`
	NewChain []chain.Block `json:"new_chain"`
}

// AuthoritativeResponse is returned when consensus kept the local chain.
type AuthoritativeResponse struct {
	Message string        `json:"message"`
	Chain   []chain.Block `json:"chain"`
}

// PendingResponse lists the transactions waiting for the next block.
type PendingResponse struct {
	Transactions []chain.Transaction `json:"transactions"`
}
