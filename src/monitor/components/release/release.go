package release

import (
	"context"
	"fmt"
	"log"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// releaseFunds(uint256 campaignId, string milestoneId) on the fund-release
// contract.
const releaseABI = `[{"inputs":[{"internalType":"uint256","name":"campaignId","type":"uint256"},{"internalType":"string","name":"milestoneId","type":"string"}],"name":"releaseFunds","outputs":[],"stateMutability":"nonpayable","type":"function"}]`

type Config struct {
	RPCURL     string
	PrivateKey string // hex, with or without 0x prefix
	Contract   string
	ChainID    int64
}

// EVM submits fund-release transactions against the configured contract.
// With no key or RPC URL configured it degrades to a warning no-op so the
// engine can run in evidence-only mode.
type EVM struct {
	config Config
	abi    abi.ABI
}

func New(config Config) (*EVM, error) {
	parsed, err := abi.JSON(strings.NewReader(releaseABI))
	if err != nil {
		return nil, fmt.Errorf("release: parse abi: %w", err)
	}
	return &EVM{config: config, abi: parsed}, nil
}

func (e *EVM) configured() bool {
	return e.config.RPCURL != "" && e.config.PrivateKey != "" && e.config.Contract != ""
}

// Release submits one releaseFunds transaction and waits for it to be mined.
// Never retried here; the caller logs failures and moves on.
func (e *EVM) Release(ctx context.Context, campaignID uint64, milestoneID string) error {
	if !e.configured() {
		log.Printf("release: skipped for campaign %d milestone %s: rpc url, private key or contract not set",
			campaignID, milestoneID)
		return nil
	}

	client, err := ethclient.DialContext(ctx, e.config.RPCURL)
	if err != nil {
		return fmt.Errorf("release: dial rpc: %w", err)
	}
	defer client.Close()

	key, err := crypto.HexToECDSA(strings.TrimPrefix(e.config.PrivateKey, "0x"))
	if err != nil {
		return fmt.Errorf("release: parse private key: %w", err)
	}
	from := crypto.PubkeyToAddress(key.PublicKey)
	to := common.HexToAddress(e.config.Contract)

	calldata, err := e.abi.Pack("releaseFunds", new(big.Int).SetUint64(campaignID), milestoneID)
	if err != nil {
		return fmt.Errorf("release: pack calldata: %w", err)
	}

	nonce, err := client.PendingNonceAt(ctx, from)
	if err != nil {
		return fmt.Errorf("release: nonce: %w", err)
	}
	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		return fmt.Errorf("release: gas price: %w", err)
	}
	gasLimit, err := client.EstimateGas(ctx, ethereum.CallMsg{From: from, To: &to, Data: calldata})
	if err != nil {
		return fmt.Errorf("release: estimate gas: %w", err)
	}

	tx := ethtypes.NewTransaction(nonce, to, big.NewInt(0), gasLimit, gasPrice, calldata)
	signed, err := ethtypes.SignTx(tx, ethtypes.LatestSignerForChainID(big.NewInt(e.config.ChainID)), key)
	if err != nil {
		return fmt.Errorf("release: sign tx: %w", err)
	}

	if err := client.SendTransaction(ctx, signed); err != nil {
		return fmt.Errorf("release: send tx: %w", err)
	}

	receipt, err := bind.WaitMined(ctx, client, signed)
	if err != nil {
		return fmt.Errorf("release: wait mined: %w", err)
	}
	if receipt.Status != ethtypes.ReceiptStatusSuccessful {
		return fmt.Errorf("release: tx %s reverted", signed.Hash().Hex())
	}

	log.Printf("release: tx %s mined for campaign %d milestone %s", signed.Hash().Hex(), campaignID, milestoneID)
	return nil
}
