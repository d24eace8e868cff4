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

package chain

// Genesis parameters. The genesis block does not link to a real predecessor,
// so its previous hash is a fixed sentinel.
const (
	GenesisIndex        = 1
	GenesisProof        = 100
	GenesisPreviousHash = "1"
)

// Miner reward parameters. The sender of a reward transaction is the fixed
// string "0", which marks newly minted coins.
const (
	RewardSender = "0"
	RewardAmount = 1
)
