// Package ledger wraps the election smart contract behind a
// request/response client. It keeps no local state: every method is a
// single bounded remote interaction, and the contract remains the only
// authority on vote counts and live election status.
package ledger

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"github.com/Randielfi/Sistema-Votacion-Blockchain/metrics"
)

var (
	// ErrRejected is a definite on-chain failure: the transaction was
	// mined and reverted, or the creation event the caller needs was not
	// emitted. The operation did not take effect and must not be
	// retried blindly by this layer.
	ErrRejected = errors.New("ledger: transaction rejected by contract")

	// ErrAmbiguous marks outcomes where the transaction may or may not
	// have been mined (timeouts, dropped connections mid-wait). Callers
	// must not assume the on-chain state is unchanged.
	ErrAmbiguous = errors.New("ledger: transaction outcome unknown")
)

// ElectionStatus is the contract's live view of one election.
type ElectionStatus struct {
	Title          string `json:"title"`
	Started        bool   `json:"started"`
	Ended          bool   `json:"ended"`
	CandidateCount int    `json:"candidatesCount"`
}

// ResultEntry is one candidate's tally, in the order the contract
// stores candidates. The order is part of the integrity-hash contract
// and must never be re-sorted by callers.
type ResultEntry struct {
	CandidateName string `json:"candidateName"`
	Votes         int    `json:"votes"`
}

// Winner is the contract's decision after an election ended.
type Winner struct {
	Name  string
	Votes int
	IsTie bool
}

// Config carries the connection settings and the signing key for
// transaction-sending operations. The key is injected here and scoped
// to the client; nothing in the system holds it as global state.
type Config struct {
	RPCURL          string
	ContractAddress string
	PrivateKey      string // hex, with or without 0x prefix
	ChainID         int64
	GasLimit        uint64
	CallTimeout     time.Duration
}

// Client talks to the deployed election contract.
type Client struct {
	eth      *ethclient.Client
	contract *bind.BoundContract
	abi      abi.ABI
	key      *ecdsa.PrivateKey
	from     common.Address
	chainID  *big.Int
	gasLimit uint64
	timeout  time.Duration
	logger   *zap.Logger
	metrics  *metrics.Ledger
}

// Dial connects to the RPC endpoint and binds the contract.
func Dial(cfg Config, logger *zap.Logger, m *metrics.Ledger) (*Client, error) {
	eth, err := ethclient.Dial(cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC node %s: %w", cfg.RPCURL, err)
	}

	parsed, err := abi.JSON(strings.NewReader(electionABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse contract ABI: %w", err)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to load signing key: %w", err)
	}

	address := common.HexToAddress(cfg.ContractAddress)
	contract := bind.NewBoundContract(address, parsed, eth, eth, eth)

	gasLimit := cfg.GasLimit
	if gasLimit == 0 {
		gasLimit = 900000
	}

	return &Client{
		eth:      eth,
		contract: contract,
		abi:      parsed,
		key:      key,
		from:     crypto.PubkeyToAddress(key.PublicKey),
		chainID:  big.NewInt(cfg.ChainID),
		gasLimit: gasLimit,
		timeout:  cfg.CallTimeout,
		logger:   logger,
		metrics:  m,
	}, nil
}

// Close releases the RPC connection.
func (c *Client) Close() {
	c.eth.Close()
}

func (c *Client) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

// transact sends one state-changing call and waits for it to be mined.
// A nil error means the receipt reported success; ErrRejected means a
// definite revert; ErrAmbiguous means the outcome is unknown.
func (c *Client) transact(ctx context.Context, method string, args ...interface{}) (*types.Receipt, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(c.key, c.chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to build transactor: %w", err)
	}
	opts.Context = ctx
	opts.GasLimit = c.gasLimit

	tx, err := c.contract.Transact(opts, method, args...)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: sending %s: %v", ErrAmbiguous, method, err)
		}
		return nil, fmt.Errorf("failed to send %s transaction: %w", method, err)
	}

	receipt, err := bind.WaitMined(ctx, c.eth, tx)
	if err != nil {
		// The transaction is out; we simply stopped waiting for it.
		return nil, fmt.Errorf("%w: waiting for %s (tx %s): %v", ErrAmbiguous, method, tx.Hash().Hex(), err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return receipt, fmt.Errorf("%w: %s (tx %s)", ErrRejected, method, tx.Hash().Hex())
	}
	return receipt, nil
}

type electionStartedEvent struct {
	ElectionId *big.Int
	Title      string
}

// StartElection creates an election on-chain and returns the id the
// contract assigned to it, decoded from the ElectionStarted event of
// the mined receipt. A receipt without that event counts as a
// rejection: the caller must not create any local record for it.
func (c *Client) StartElection(ctx context.Context, title string, candidateNames []string) (id uint64, err error) {
	defer func(start time.Time) { c.metrics.Observe("startNewElection", start, err) }(time.Now())
	ctx, cancel := c.callCtx(ctx)
	defer cancel()

	c.logger.Info("starting election on-chain",
		zap.String("title", title),
		zap.Strings("candidates", candidateNames),
		zap.String("from", c.from.Hex()))

	receipt, txErr := c.transact(ctx, "startNewElection", title, candidateNames)
	if txErr != nil {
		return 0, txErr
	}

	eventID := c.abi.Events["ElectionStarted"].ID
	for _, entry := range receipt.Logs {
		if len(entry.Topics) == 0 || entry.Topics[0] != eventID {
			continue
		}
		var ev electionStartedEvent
		if err := c.contract.UnpackLog(&ev, "ElectionStarted", *entry); err != nil {
			continue
		}
		c.logger.Info("election created on-chain", zap.Uint64("electionId", ev.ElectionId.Uint64()))
		return ev.ElectionId.Uint64(), nil
	}

	return 0, fmt.Errorf("%w: ElectionStarted event not found in receipt", ErrRejected)
}

// EndElection finalizes the election on-chain. Failures are surfaced,
// never retried here: a second endElection after an ambiguous first
// one is the operator's call to make.
func (c *Client) EndElection(ctx context.Context, electionID uint64) (err error) {
	defer func(start time.Time) { c.metrics.Observe("endElection", start, err) }(time.Now())
	ctx, cancel := c.callCtx(ctx)
	defer cancel()

	_, err = c.transact(ctx, "endElection", new(big.Int).SetUint64(electionID))
	if err != nil {
		return err
	}
	c.logger.Info("election ended on-chain", zap.Uint64("electionId", electionID))
	return nil
}

// GetStatus reads the live status of an election. Unknown elections
// and read failures both come back as a nil status with no error, in
// line with the contract being allowed to not know the id; the caller
// reports such elections as state "Desconocido".
func (c *Client) GetStatus(ctx context.Context, electionID uint64) (status *ElectionStatus, err error) {
	defer func(start time.Time) { c.metrics.Observe("getElectionStatus", start, err) }(time.Now())
	ctx, cancel := c.callCtx(ctx)
	defer cancel()

	var out []interface{}
	callErr := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getElectionStatus", new(big.Int).SetUint64(electionID))
	if callErr != nil {
		c.logger.Warn("getElectionStatus failed", zap.Uint64("electionId", electionID), zap.Error(callErr))
		return nil, nil
	}

	return &ElectionStatus{
		Title:          out[0].(string),
		Started:        out[1].(bool),
		Ended:          out[2].(bool),
		CandidateCount: int(out[3].(*big.Int).Int64()),
	}, nil
}

// GetResults returns the tally as (name, votes) pairs zipped from the
// contract's parallel arrays, preserving contract order.
func (c *Client) GetResults(ctx context.Context, electionID uint64) (results []ResultEntry, err error) {
	defer func(start time.Time) { c.metrics.Observe("getResults", start, err) }(time.Now())
	ctx, cancel := c.callCtx(ctx)
	defer cancel()

	var out []interface{}
	if err = c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getResults", new(big.Int).SetUint64(electionID)); err != nil {
		return nil, fmt.Errorf("failed to read results for election %d: %w", electionID, err)
	}

	names := out[0].([]string)
	votes := out[1].([]*big.Int)

	results = make([]ResultEntry, 0, len(names))
	for i, name := range names {
		count := 0
		if i < len(votes) {
			count = int(votes[i].Int64())
		}
		results = append(results, ResultEntry{CandidateName: name, Votes: count})
	}
	return results, nil
}

// HasVoted reports whether the wallet already voted in the election.
// Ledger addresses are case-insensitive, so the address is normalized
// before the call.
func (c *Client) HasVoted(ctx context.Context, electionID uint64, address string) (voted bool, err error) {
	defer func(start time.Time) { c.metrics.Observe("hasAddressVoted", start, err) }(time.Now())
	ctx, cancel := c.callCtx(ctx)
	defer cancel()

	addr := common.HexToAddress(strings.ToLower(address))

	var out []interface{}
	if err = c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "hasAddressVoted", new(big.Int).SetUint64(electionID), addr); err != nil {
		return false, fmt.Errorf("failed to check hasAddressVoted: %w", err)
	}
	return out[0].(bool), nil
}

// GetWinner reads the contract's winner decision. Callers must confirm
// the election ended first; asking earlier is a caller error and the
// service layer gates it.
func (c *Client) GetWinner(ctx context.Context, electionID uint64) (winner *Winner, err error) {
	defer func(start time.Time) { c.metrics.Observe("getWinner", start, err) }(time.Now())
	ctx, cancel := c.callCtx(ctx)
	defer cancel()

	var out []interface{}
	if err = c.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getWinner", new(big.Int).SetUint64(electionID)); err != nil {
		return nil, fmt.Errorf("failed to read winner for election %d: %w", electionID, err)
	}

	return &Winner{
		Name:  out[0].(string),
		Votes: int(out[1].(*big.Int).Int64()),
		IsTie: out[2].(bool),
	}, nil
}

// VoteFor submits one vote transaction for the given positional
// candidate index. The index is the slot in the contract's candidate
// array, not a local candidate id.
func (c *Client) VoteFor(ctx context.Context, electionID uint64, candidateIndex int, voterAddress string) (err error) {
	defer func(start time.Time) { c.metrics.Observe("voteFor", start, err) }(time.Now())
	ctx, cancel := c.callCtx(ctx)
	defer cancel()

	c.logger.Info("submitting vote on-chain",
		zap.Uint64("electionId", electionID),
		zap.Int("candidateIndex", candidateIndex),
		zap.String("wallet", strings.ToLower(voterAddress)))

	_, err = c.transact(ctx, "voteFor",
		new(big.Int).SetUint64(electionID),
		big.NewInt(int64(candidateIndex)),
		common.HexToAddress(strings.ToLower(voterAddress)))
	return err
}
