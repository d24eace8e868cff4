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
	"testing"
)

type Peers struct {
	RegisterFunc func(address string)
	ListFunc     func() []string
}

func BaselinePeers(t *testing.T) *Peers {
	t.Helper()

	p := Peers{
		RegisterFunc: func(string) {},
		ListFunc: func() []string {
			return GenericAddresses(2)
		},
	}

	return &p
}

func (p *Peers) Register(address string) {
	p.RegisterFunc(address)
}

func (p *Peers) List() []string {
	return p.ListFunc()
}
