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
	"sort"
	"sync"
)

// Peers is the set of known peer addresses. Addresses are expected in their
// canonical `host:port` form; registering the same address twice has no effect.
type Peers struct {
	mutex     *sync.RWMutex
	addresses map[string]struct{}
}

// NewPeers creates a peer set holding the given addresses.
func NewPeers(addresses ...string) *Peers {

	p := Peers{
		mutex:     &sync.RWMutex{},
		addresses: make(map[string]struct{}, len(addresses)),
	}

	for _, address := range addresses {
		p.addresses[address] = struct{}{}
	}

	return &p
}

// Register adds the address to the set.
func (p *Peers) Register(address string) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.addresses[address] = struct{}{}
}

// List returns the known addresses in lexical order.
func (p *Peers) List() []string {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	addresses := make([]string, 0, len(p.addresses))
	for address := range p.addresses {
		addresses = append(addresses, address)
	}
	sort.Strings(addresses)

	return addresses
}

// Len returns the number of known addresses.
func (p *Peers) Len() int {
	p.mutex.RLock()
	defer p.mutex.RUnlock()

	return len(p.addresses)
}
