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
	"fmt"
	"net/url"
	"strings"
)

// ParseAddress reduces a node address to its `host:port` identity. Full URLs
// such as `http://127.0.0.1:5000/chain` and bare `127.0.0.1:5000` addresses
// are both accepted.
func ParseAddress(raw string) (string, error) {

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty address", ErrInvalidAddress)
	}

	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", fmt.Errorf("%w: %s", ErrInvalidAddress, err)
		}
		if u.Host == "" {
			return "", fmt.Errorf("%w: no host in %q", ErrInvalidAddress, raw)
		}
		return u.Host, nil
	}

	// Without a scheme, parse the address as a network-path reference, so
	// that the host and port end up in the host part of the URL.
	u, err := url.Parse("//" + raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidAddress, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: no host in %q", ErrInvalidAddress, raw)
	}

	return u.Host, nil
}
