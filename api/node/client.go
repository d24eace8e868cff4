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
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/optakt/hashchain/models/chain"
)

// Client fetches chains from other nodes over their HTTP API.
type Client struct {
	http *http.Client
}

// NewClient creates a client that uses the given HTTP client for requests.
func NewClient(client *http.Client) *Client {

	c := Client{
		http: client,
	}

	return &c
}

// Chain requests the full chain from the node at the given `host:port`
// address. Any status other than 200 is treated as a failure.
func (c *Client) Chain(ctx context.Context, address string) (*chain.Response, error) {

	url := fmt.Sprintf("http://%s/chain", address)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not execute request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil, fmt.Errorf("unexpected status code (%d)", res.StatusCode)
	}

	var response chain.Response
	err = json.NewDecoder(res.Body).Decode(&response)
	if err != nil {
		return nil, fmt.Errorf("could not decode response: %w", err)
	}

	return &response, nil
}
