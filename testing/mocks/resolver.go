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

type Resolver struct {
	ResolveFunc func(ctx context.Context) bool
}

func BaselineResolver(t *testing.T) *Resolver {
	t.Helper()

	r := Resolver{
		ResolveFunc: func(context.Context) bool {
			return false
		},
	}

	return &r
}

func (r *Resolver) Resolve(ctx context.Context) bool {
	return r.ResolveFunc(ctx)
}
