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
	"context"
	"testing"
)

type Miner struct {
	SolveContextFunc func(ctx context.Context, lastProof uint64) (uint64, error)
}

func BaselineMiner(t *testing.T) *Miner {
	t.Helper()

	m := Miner{
		SolveContextFunc: func(context.Context, uint64) (uint64, error) {
			return GenericProof, nil
		},
	}

	return &m
}

func (m *Miner) SolveContext(ctx context.Context, lastProof uint64) (uint64, error) {
	return m.SolveContextFunc(ctx, lastProof)
}
