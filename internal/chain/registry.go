// Package chain declares the deployed contract addresses per chain and the
// ABIs used to talk to them.
package chain

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DefaultMulticall3 is the canonical Multicall3 deployment shared by most EVM chains
var DefaultMulticall3 = common.HexToAddress("0xcA11bde05977b3631167028862bE2a173976CA11")

var ErrUnknownChain = errors.New("unknown chain")

// Contracts are the deployed addresses on one chain. Zero addresses mark
// features not deployed there.
type Contracts struct {
	TokenFactory   common.Address
	PresaleFactory common.Address
	TokenLocker    common.Address
	Airdrop        common.Address
	NFTFactory     common.Address
	Staking        common.Address
	Router         common.Address
	AMMFactory     common.Address
	Multicall      common.Address
}

// Chain is one entry of the registry
type Chain struct {
	ID        uint64
	Name      string
	RPCURL    string
	Contracts Contracts
}

type registryFile struct {
	Chains []chainEntry `yaml:"chains" validate:"required,min=1,dive"`
}

type chainEntry struct {
	ChainID   uint64          `yaml:"chain_id" validate:"required"`
	Name      string          `yaml:"name" validate:"required"`
	RPCURL    string          `yaml:"rpc_url" validate:"required,url"`
	Contracts contractEntries `yaml:"contracts"`
}

type contractEntries struct {
	TokenFactory   string `yaml:"token_factory" validate:"required,eth_addr"`
	PresaleFactory string `yaml:"presale_factory" validate:"required,eth_addr"`
	TokenLocker    string `yaml:"token_locker" validate:"required,eth_addr"`
	Airdrop        string `yaml:"airdrop" validate:"omitempty,eth_addr"`
	NFTFactory     string `yaml:"nft_factory" validate:"omitempty,eth_addr"`
	Staking        string `yaml:"staking" validate:"omitempty,eth_addr"`
	Router         string `yaml:"router" validate:"omitempty,eth_addr"`
	AMMFactory     string `yaml:"amm_factory" validate:"omitempty,eth_addr"`
	Multicall      string `yaml:"multicall" validate:"omitempty,eth_addr"`
}

var validate = validator.New()

// Registry maps chain IDs to their contract deployments
type Registry struct {
	chains map[uint64]Chain
}

// LoadRegistry reads and validates a registry YAML file
func LoadRegistry(path string, logger *zap.Logger) (*Registry, error) {
	logger.Info("Loading chain registry", zap.String("path", path))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chain registry: %w", err)
	}

	registry, err := ParseRegistry(data)
	if err != nil {
		return nil, err
	}

	logger.Info("Chain registry loaded", zap.Any("chain_ids", registry.ChainIDs()))
	return registry, nil
}

// ParseRegistry decodes and validates registry YAML
func ParseRegistry(data []byte) (*Registry, error) {
	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode chain registry: %w", err)
	}
	if err := validate.Struct(file); err != nil {
		return nil, fmt.Errorf("invalid chain registry: %w", err)
	}

	registry := &Registry{chains: make(map[uint64]Chain, len(file.Chains))}
	for _, entry := range file.Chains {
		if _, exists := registry.chains[entry.ChainID]; exists {
			return nil, fmt.Errorf("invalid chain registry: duplicate chain_id %d", entry.ChainID)
		}
		registry.chains[entry.ChainID] = entry.toChain()
	}
	return registry, nil
}

func (e chainEntry) toChain() Chain {
	c := e.Contracts
	contracts := Contracts{
		TokenFactory:   parseAddress(c.TokenFactory),
		PresaleFactory: parseAddress(c.PresaleFactory),
		TokenLocker:    parseAddress(c.TokenLocker),
		Airdrop:        parseAddress(c.Airdrop),
		NFTFactory:     parseAddress(c.NFTFactory),
		Staking:        parseAddress(c.Staking),
		Router:         parseAddress(c.Router),
		AMMFactory:     parseAddress(c.AMMFactory),
		Multicall:      parseAddress(c.Multicall),
	}
	if contracts.Multicall == (common.Address{}) {
		contracts.Multicall = DefaultMulticall3
	}
	return Chain{
		ID:        e.ChainID,
		Name:      e.Name,
		RPCURL:    e.RPCURL,
		Contracts: contracts,
	}
}

func parseAddress(s string) common.Address {
	if s == "" {
		return common.Address{}
	}
	return common.HexToAddress(s)
}

// Chain returns the registry entry for chainID
func (r *Registry) Chain(chainID uint64) (Chain, error) {
	c, ok := r.chains[chainID]
	if !ok {
		return Chain{}, fmt.Errorf("%w: %d", ErrUnknownChain, chainID)
	}
	return c, nil
}

// Contracts returns the deployed addresses on chainID
func (r *Registry) Contracts(chainID uint64) (Contracts, error) {
	c, err := r.Chain(chainID)
	if err != nil {
		return Contracts{}, err
	}
	return c.Contracts, nil
}

// ChainIDs lists the registered chains in ascending order
func (r *Registry) ChainIDs() []uint64 {
	ids := make([]uint64, 0, len(r.chains))
	for id := range r.chains {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
