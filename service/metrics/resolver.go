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

package metrics

import (
	"context"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const labelReplaced = "replaced"

// ChainResolver runs a consensus round against the known peers.
type ChainResolver interface {
	Resolve(ctx context.Context) bool
}

// Resolver wraps the consensus resolver and records the outcome of every
// resolution.
type Resolver struct {
	resolver ChainResolver

	resolutions *prometheus.CounterVec
}

// NewResolver creates a new resolver wrapper that registers its metrics with
// the given registerer.
func NewResolver(resolver ChainResolver, registerer prometheus.Registerer) *Resolver {
	resolutionOpts := prometheus.CounterOpts{
		Name: "consensus_resolutions",
		Help: "the number of consensus resolutions, by whether the local chain was replaced",
	}
	resolutions := promauto.With(registerer).NewCounterVec(resolutionOpts, []string{labelReplaced})

	r := Resolver{
		resolver:    resolver,
		resolutions: resolutions,
	}

	return &r
}

// Resolve runs a resolution and records its outcome.
func (r *Resolver) Resolve(ctx context.Context) bool {
	replaced := r.resolver.Resolve(ctx)
	r.resolutions.With(prometheus.Labels{labelReplaced: strconv.FormatBool(replaced)}).Inc()
	return replaced
}
