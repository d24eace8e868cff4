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
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/optakt/hashchain/models/chain"
)

// Controller serves the node API on top of the ledger, the proof-of-work
// miner and the consensus resolver.
type Controller struct {
	log      zerolog.Logger
	ledger   Ledger
	miner    Miner
	resolver Resolver
	peers    Peers
	validate *validator.Validate
	nodeID   string

	// mutex serializes mining and consensus, so that a mined proof is always
	// sealed on top of the block it was mined for.
	mutex *sync.Mutex
}

// NewController creates a controller for the node with the given identifier.
// The identifier receives the mining rewards.
func NewController(log zerolog.Logger, ledger Ledger, miner Miner, resolver Resolver, peers Peers, nodeID string) *Controller {

	c := Controller{
		log:      log.With().Str("component", "node_api").Logger(),
		ledger:   ledger,
		miner:    miner,
		resolver: resolver,
		peers:    peers,
		validate: newRequestValidator(),
		nodeID:   nodeID,
		mutex:    &sync.Mutex{},
	}

	return &c
}

// Register adds the node routes to the given server.
func (c *Controller) Register(server *echo.Echo) {
	server.GET("/mine", c.Mine)
	server.POST("/transactions/new", c.NewTransaction)
	server.GET("/transactions/pending", c.Pending)
	server.GET("/chain", c.Chain)
	server.POST("/nodes/register", c.RegisterNodes)
	server.GET("/nodes/resolve", c.Resolve)
}

// Mine finds a proof of work for the last block, credits the node with the
// mining reward and seals the pending transactions into a new block.
func (c *Controller) Mine(ctx echo.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	last := c.ledger.LastBlock()
	proof, err := c.miner.SolveContext(ctx.Request().Context(), last.Proof)
	if err != nil {
		return newHTTPError(http.StatusServiceUnavailable, "could not mine proof", err)
	}

	c.ledger.NewTransaction(chain.RewardSender, c.nodeID, chain.RewardAmount)
	block := c.ledger.NewBlock(proof, c.ledger.Hash(last))

	c.log.Info().
		Uint64("index", block.Index).
		Uint64("proof", block.Proof).
		Int("transactions", len(block.Transactions)).
		Msg("new block forged")

	res := MineResponse{
		Message:      "New Block Forged",
		Index:        block.Index,
		Transactions: block.Transactions,
		Proof:        block.Proof,
		PreviousHash: block.PreviousHash,
	}

	return ctx.JSON(http.StatusOK, res)
}

// NewTransaction adds a transaction to the pending buffer.
func (c *Controller) NewTransaction(ctx echo.Context) error {

	var req TransactionRequest
	err := ctx.Bind(&req)
	if err != nil {
		return newHTTPError(http.StatusBadRequest, "Missing data", err)
	}

	err = c.check(req, ErrMissingData)
	if err != nil {
		return newHTTPError(http.StatusBadRequest, "Missing data", err)
	}

	index := c.ledger.NewTransaction(*req.Sender, *req.Recipient, *req.Amount)

	res := MessageResponse{
		Message: fmt.Sprintf("Transaction will be added to Block %d", index),
	}

	return ctx.JSON(http.StatusCreated, res)
}

// Pending lists the transactions that are waiting for the next block.
func (c *Controller) Pending(ctx echo.Context) error {

	res := PendingResponse{
		Transactions: c.ledger.Pending(),
	}

	return ctx.JSON(http.StatusOK, res)
}

// Chain returns the full local chain and its length.
func (c *Controller) Chain(ctx echo.Context) error {

	blocks := c.ledger.Chain()
	res := chain.Response{
		Chain:  blocks,
		Length: len(blocks),
	}

	return ctx.JSON(http.StatusOK, res)
}

// RegisterNodes adds the given node addresses to the peer set. Either all of
// the addresses are registered, or none of them.
func (c *Controller) RegisterNodes(ctx echo.Context) error {

	var req RegisterRequest
	err := ctx.Bind(&req)
	if err != nil {
		return newHTTPError(http.StatusBadRequest, "Error: Please supply a valid list of nodes", err)
	}

	err = c.check(req, ErrMissingNodes)
	if err != nil {
		return newHTTPError(http.StatusBadRequest, "Error: Please supply a valid list of nodes", err)
	}

	addresses := make([]string, 0, len(req.Nodes))
	for _, node := range req.Nodes {
		address, err := ParseAddress(node)
		if err != nil {
			return newHTTPError(http.StatusBadRequest, "Error: Please supply a valid list of nodes", err)
		}
		addresses = append(addresses, address)
	}

	for _, address := range addresses {
		c.peers.Register(address)
	}

	c.log.Info().Strs("nodes", addresses).Msg("nodes registered")

	res := RegisterResponse{
		Message:    "New nodes have been added",
		TotalNodes: c.peers.List(),
	}

	return ctx.JSON(http.StatusCreated, res)
}

// Resolve runs the consensus algorithm and returns the resulting chain.
func (c *Controller) Resolve(ctx echo.Context) error {

	replaced := c.Reconcile(ctx.Request().Context())
	blocks := c.ledger.Chain()

	if replaced {
		res := ReplacedResponse{
			Message:  "Our chain was replaced",
			NewChain: blocks,
		}
		return ctx.JSON(http.StatusOK, res)
	}

	res := AuthoritativeResponse{
		Message: "Our chain is authoritative",
		Chain:   blocks,
	}

	return ctx.JSON(http.StatusOK, res)
}
