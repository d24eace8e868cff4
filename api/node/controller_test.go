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

package node_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optakt/hashchain/api/node"
	"github.com/optakt/hashchain/models/chain"
	"github.com/optakt/hashchain/testing/mocks"
)

// forge creates an echo context for a request with the given JSON body.
func forge(t *testing.T, method string, target string, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	ctx := echo.New().NewContext(req, rec)

	return ctx, rec
}

func baselineController(t *testing.T, ledger node.Ledger, miner node.Miner, resolver node.Resolver, peers node.Peers) *node.Controller {
	t.Helper()

	return node.NewController(mocks.NoopLogger, ledger, miner, resolver, peers, mocks.GenericNodeID)
}

func TestController_Mine(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		var rewarded bool
		ledger := mocks.BaselineLedger(t)
		ledger.NewTransactionFunc = func(sender string, recipient string, amount int64) uint64 {
			assert.Equal(t, chain.RewardSender, sender)
			assert.Equal(t, mocks.GenericNodeID, recipient)
			assert.Equal(t, int64(chain.RewardAmount), amount)
			rewarded = true
			return 3
		}
		ledger.HashFunc = func(block chain.Block) string {
			assert.Equal(t, mocks.GenericBlocks[1], block)
			return mocks.GenericHash
		}
		ledger.NewBlockFunc = func(proof uint64, previousHash ...string) chain.Block {
			assert.True(t, rewarded)
			assert.Equal(t, uint64(42), proof)
			assert.Equal(t, []string{mocks.GenericHash}, previousHash)
			return chain.Block{
				Index:        3,
				Timestamp:    mocks.GenericTimestamp,
				Transactions: []chain.Transaction{{Sender: "0", Recipient: mocks.GenericNodeID, Amount: 1}},
				Proof:        proof,
				PreviousHash: previousHash[0],
			}
		}

		miner := mocks.BaselineMiner(t)
		miner.SolveContextFunc = func(_ context.Context, lastProof uint64) (uint64, error) {
			assert.Equal(t, mocks.GenericBlocks[1].Proof, lastProof)
			return 42, nil
		}

		c := baselineController(t, ledger, miner, mocks.BaselineResolver(t), mocks.BaselinePeers(t))
		ctx, rec := forge(t, http.MethodGet, "/mine", "")

		err := c.Mine(ctx)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, rec.Code)

		var res node.MineResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
		assert.Equal(t, "New Block Forged", res.Message)
		assert.Equal(t, uint64(3), res.Index)
		assert.Equal(t, uint64(42), res.Proof)
		assert.Equal(t, mocks.GenericHash, res.PreviousHash)
		assert.Equal(t, []chain.Transaction{{Sender: "0", Recipient: mocks.GenericNodeID, Amount: 1}}, res.Transactions)
	})

	t.Run("handles mining failure", func(t *testing.T) {
		t.Parallel()

		ledger := mocks.BaselineLedger(t)
		ledger.NewBlockFunc = func(uint64, ...string) chain.Block {
			t.Fatal("no block should be sealed")
			return chain.Block{}
		}
		miner := mocks.BaselineMiner(t)
		miner.SolveContextFunc = func(context.Context, uint64) (uint64, error) {
			return 0, mocks.GenericError
		}

		c := baselineController(t, ledger, miner, mocks.BaselineResolver(t), mocks.BaselinePeers(t))
		ctx, _ := forge(t, http.MethodGet, "/mine", "")

		err := c.Mine(ctx)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusServiceUnavailable, httpErr.Code)
	})
}

func TestController_NewTransaction(t *testing.T) {
	tests := []struct {
		desc string
		body string

		wantStatus  int
		wantMessage string
		wantTx      *chain.Transaction
	}{
		{
			desc:        "nominal case",
			body:        `{"sender":"alice","recipient":"bob","amount":10}`,
			wantStatus:  http.StatusCreated,
			wantMessage: "Transaction will be added to Block 3",
			wantTx:      &chain.Transaction{Sender: "alice", Recipient: "bob", Amount: 10},
		},
		{
			desc:        "zero values are present values",
			body:        `{"sender":"","recipient":"","amount":0}`,
			wantStatus:  http.StatusCreated,
			wantMessage: "Transaction will be added to Block 3",
			wantTx:      &chain.Transaction{},
		},
		{
			desc:       "missing amount",
			body:       `{"sender":"alice","recipient":"bob"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			desc:       "missing sender",
			body:       `{"recipient":"bob","amount":10}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			desc:       "missing recipient",
			body:       `{"sender":"alice","amount":10}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			desc:       "empty body",
			body:       ``,
			wantStatus: http.StatusBadRequest,
		},
		{
			desc:       "malformed body",
			body:       `{"sender":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			desc:       "amount of wrong type",
			body:       `{"sender":"alice","recipient":"bob","amount":"ten"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.desc, func(t *testing.T) {
			t.Parallel()

			var submitted *chain.Transaction
			ledger := mocks.BaselineLedger(t)
			ledger.NewTransactionFunc = func(sender string, recipient string, amount int64) uint64 {
				submitted = &chain.Transaction{Sender: sender, Recipient: recipient, Amount: amount}
				return 3
			}

			c := baselineController(t, ledger, mocks.BaselineMiner(t), mocks.BaselineResolver(t), mocks.BaselinePeers(t))
			ctx, rec := forge(t, http.MethodPost, "/transactions/new", test.body)

			err := c.NewTransaction(ctx)

			if test.wantStatus != http.StatusCreated {
				var httpErr *echo.HTTPError
				require.ErrorAs(t, err, &httpErr)
				assert.Equal(t, test.wantStatus, httpErr.Code)
				assert.Nil(t, submitted)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.wantStatus, rec.Code)
			assert.Equal(t, test.wantTx, submitted)

			var res node.MessageResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
			assert.Equal(t, test.wantMessage, res.Message)
		})
	}
}

func TestController_Pending(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		c := baselineController(t, mocks.BaselineLedger(t), mocks.BaselineMiner(t), mocks.BaselineResolver(t), mocks.BaselinePeers(t))
		ctx, rec := forge(t, http.MethodGet, "/transactions/pending", "")

		err := c.Pending(ctx)
		require.NoError(t, err)

		var res node.PendingResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
		assert.Equal(t, mocks.GenericTransactions, res.Transactions)
	})
}

func TestController_Chain(t *testing.T) {
	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		c := baselineController(t, mocks.BaselineLedger(t), mocks.BaselineMiner(t), mocks.BaselineResolver(t), mocks.BaselinePeers(t))
		ctx, rec := forge(t, http.MethodGet, "/chain", "")

		err := c.Chain(ctx)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, rec.Code)

		var res chain.Response
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
		assert.Equal(t, len(mocks.GenericBlocks), res.Length)
		assert.Equal(t, mocks.GenericBlocks, res.Chain)
	})
}

func TestController_RegisterNodes(t *testing.T) {
	tests := []struct {
		desc string
		body string

		wantStatus     int
		wantRegistered []string
	}{
		{
			desc:           "nominal case",
			body:           `{"nodes":["http://127.0.0.1:5001","127.0.0.1:5002"]}`,
			wantStatus:     http.StatusCreated,
			wantRegistered: []string{"127.0.0.1:5001", "127.0.0.1:5002"},
		},
		{
			desc:           "empty list",
			body:           `{"nodes":[]}`,
			wantStatus:     http.StatusCreated,
			wantRegistered: nil,
		},
		{
			desc:       "missing list",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			desc:       "null list",
			body:       `{"nodes":null}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			desc:       "one invalid address rejects all",
			body:       `{"nodes":["http://127.0.0.1:5001","http://"]}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			desc:       "malformed body",
			body:       `{"nodes":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.desc, func(t *testing.T) {
			t.Parallel()

			var registered []string
			peers := mocks.BaselinePeers(t)
			peers.RegisterFunc = func(address string) {
				registered = append(registered, address)
			}
			peers.ListFunc = func() []string {
				return registered
			}

			c := baselineController(t, mocks.BaselineLedger(t), mocks.BaselineMiner(t), mocks.BaselineResolver(t), peers)
			ctx, rec := forge(t, http.MethodPost, "/nodes/register", test.body)

			err := c.RegisterNodes(ctx)

			if test.wantStatus != http.StatusCreated {
				var httpErr *echo.HTTPError
				require.ErrorAs(t, err, &httpErr)
				assert.Equal(t, test.wantStatus, httpErr.Code)
				assert.Empty(t, registered)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.wantStatus, rec.Code)
			assert.Equal(t, test.wantRegistered, registered)

			var res node.RegisterResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
			assert.Equal(t, "New nodes have been added", res.Message)
			assert.ElementsMatch(t, test.wantRegistered, res.TotalNodes)
		})
	}
}

func TestController_Resolve(t *testing.T) {
	t.Run("chain replaced", func(t *testing.T) {
		t.Parallel()

		resolver := mocks.BaselineResolver(t)
		resolver.ResolveFunc = func(context.Context) bool {
			return true
		}

		c := baselineController(t, mocks.BaselineLedger(t), mocks.BaselineMiner(t), resolver, mocks.BaselinePeers(t))
		ctx, rec := forge(t, http.MethodGet, "/nodes/resolve", "")

		err := c.Resolve(ctx)
		require.NoError(t, err)

		var res node.ReplacedResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
		assert.Equal(t, "Our chain was replaced", res.Message)
		assert.Equal(t, mocks.GenericBlocks, res.NewChain)
	})

	t.Run("chain kept", func(t *testing.T) {
		t.Parallel()

		c := baselineController(t, mocks.BaselineLedger(t), mocks.BaselineMiner(t), mocks.BaselineResolver(t), mocks.BaselinePeers(t))
		ctx, rec := forge(t, http.MethodGet, "/nodes/resolve", "")

		err := c.Resolve(ctx)
		require.NoError(t, err)

		var res node.AuthoritativeResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
		assert.Equal(t, "Our chain is authoritative", res.Message)
		assert.Equal(t, mocks.GenericBlocks, res.Chain)
	})
}

func TestController_Register(t *testing.T) {
	c := baselineController(t, mocks.BaselineLedger(t), mocks.BaselineMiner(t), mocks.BaselineResolver(t), mocks.BaselinePeers(t))

	server := echo.New()
	c.Register(server)

	routes := make(map[string]bool)
	for _, route := range server.Routes() {
		routes[route.Method+" "+route.Path] = true
	}

	assert.True(t, routes["GET /mine"])
	assert.True(t, routes["POST /transactions/new"])
	assert.True(t, routes["GET /transactions/pending"])
	assert.True(t, routes["GET /chain"])
	assert.True(t, routes["POST /nodes/register"])
	assert.True(t, routes["GET /nodes/resolve"])
}
