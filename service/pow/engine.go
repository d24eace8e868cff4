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

package pow

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// checkInterval is how many candidates are tried between two checks of the
// context when solving with a deadline.
const checkInterval = 1024

// Engine finds and verifies proofs of work. A proof is valid for a previous
// proof when the SHA-256 digest of the decimal representations of both,
// concatenated, starts with the configured number of zero hex characters.
type Engine struct {
	difficulty uint
	target     string
}

// New creates a new proof-of-work engine.
func New(options ...func(*Config)) *Engine {

	cfg := DefaultConfig
	for _, option := range options {
		option(&cfg)
	}

	e := Engine{
		difficulty: cfg.Difficulty,
		target:     strings.Repeat("0", int(cfg.Difficulty)),
	}

	return &e
}

// Difficulty returns the number of leading zeroes required by the engine.
func (e *Engine) Difficulty() uint {
	return e.difficulty
}

// Solve returns the smallest proof that is valid for the given last proof.
// The search has no upper bound.
func (e *Engine) Solve(lastProof uint64) uint64 {
	proof := uint64(0)
	for !e.Valid(lastProof, proof) {
		proof++
	}
	return proof
}

// SolveContext works like Solve, but gives up with the context's error once
// the context is done.
func (e *Engine) SolveContext(ctx context.Context, lastProof uint64) (uint64, error) {
	proof := uint64(0)
	for !e.Valid(lastProof, proof) {
		proof++
		if proof%checkInterval != 0 {
			continue
		}
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}
	}
	return proof, nil
}

// Valid checks whether the proof solves the puzzle for the last proof.
func (e *Engine) Valid(lastProof uint64, proof uint64) bool {
	return strings.HasPrefix(Digest(lastProof, proof), e.target)
}

// Digest returns the hex encoded digest that is checked against the target.
// The input is the decimal last proof immediately followed by the decimal
// proof, so `Digest(12, 3)` hashes the string "123".
func Digest(lastProof uint64, proof uint64) string {
	guess := make([]byte, 0, 40)
	guess = strconv.AppendUint(guess, lastProof, 10)
	guess = strconv.AppendUint(guess, proof, 10)
	sum := sha256.Sum256(guess)
	return hex.EncodeToString(sum[:])
}
