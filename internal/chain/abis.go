package chain

import (
	"bytes"
	"embed"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

//go:embed abi/*.json
var abiFiles embed.FS

// ABIs holds the parsed interface of every contract the daemon talks to
type ABIs struct {
	ERC20          abi.ABI
	TokenFactory   abi.ABI
	PresaleFactory abi.ABI
	Presale        abi.ABI
	TokenLocker    abi.ABI
	AMMFactory     abi.ABI
	AMMPair        abi.ABI
	Multicall3     abi.ABI
	Airdrop        abi.ABI
	Staking        abi.ABI
	NFTFactory     abi.ABI
}

var (
	abisOnce sync.Once
	abis     *ABIs
	abisErr  error
)

// LoadABIs parses the embedded ABI files once and returns the shared result
func LoadABIs() (*ABIs, error) {
	abisOnce.Do(func() {
		abis, abisErr = parseABIs()
	})
	return abis, abisErr
}

// MustABIs is LoadABIs for callers that cannot continue without the ABIs
func MustABIs() *ABIs {
	parsed, err := LoadABIs()
	if err != nil {
		panic(err)
	}
	return parsed
}

func parseABIs() (*ABIs, error) {
	out := &ABIs{}
	targets := map[string]*abi.ABI{
		"erc20":           &out.ERC20,
		"token_factory":   &out.TokenFactory,
		"presale_factory": &out.PresaleFactory,
		"presale":         &out.Presale,
		"token_locker":    &out.TokenLocker,
		"amm_factory":     &out.AMMFactory,
		"amm_pair":        &out.AMMPair,
		"multicall3":      &out.Multicall3,
		"airdrop":         &out.Airdrop,
		"staking":         &out.Staking,
		"nft_factory":     &out.NFTFactory,
	}

	for name, target := range targets {
		raw, err := abiFiles.ReadFile("abi/" + name + ".json")
		if err != nil {
			return nil, fmt.Errorf("failed to read %s ABI: %w", name, err)
		}
		parsed, err := abi.JSON(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s ABI: %w", name, err)
		}
		*target = parsed
	}
	return out, nil
}

func (a *ABIs) all() []*abi.ABI {
	return []*abi.ABI{
		&a.ERC20, &a.TokenFactory, &a.PresaleFactory, &a.Presale, &a.TokenLocker,
		&a.AMMFactory, &a.AMMPair, &a.Multicall3, &a.Airdrop, &a.Staking, &a.NFTFactory,
	}
}

// ErrorBySelector finds a custom contract error declared in any embedded ABI
func (a *ABIs) ErrorBySelector(selector []byte) (*abi.Error, bool) {
	if len(selector) < 4 {
		return nil, false
	}
	for _, contract := range a.all() {
		for _, e := range contract.Errors {
			if bytes.Equal(e.ID[:4], selector[:4]) {
				found := e
				return &found, true
			}
		}
	}
	return nil, false
}

// MethodBySelector finds the method a calldata prefix belongs to
func (a *ABIs) MethodBySelector(selector []byte) (*abi.Method, bool) {
	if len(selector) < 4 {
		return nil, false
	}
	for _, contract := range a.all() {
		if method, err := contract.MethodById(selector[:4]); err == nil {
			return method, true
		}
	}
	return nil, false
}
