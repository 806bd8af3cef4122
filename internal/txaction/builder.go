package txaction

import (
	"math/big"
	"strings"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"

	"go-reactpad-cache/internal/chain"
	"go-reactpad-cache/internal/models"
)

// maxBulkRecipients bounds one airdrop transaction
const maxBulkRecipients = 500

var validate = validator.New()

// Builder packs write calls against the registry contracts of the active chain
type Builder struct {
	abis     *chain.ABIs
	registry *chain.Registry
	chainID  atomic.Uint64
}

// NewBuilder creates a Builder for chainID
func NewBuilder(abis *chain.ABIs, registry *chain.Registry, chainID uint64) *Builder {
	b := &Builder{abis: abis, registry: registry}
	b.chainID.Store(chainID)
	return b
}

// SetChainID points subsequent builds at another chain's contracts
func (b *Builder) SetChainID(chainID uint64) {
	b.chainID.Store(chainID)
}

func (b *Builder) contracts() (chain.Contracts, error) {
	return b.registry.Contracts(b.chainID.Load())
}

func address(field, s string) (common.Address, error) {
	if err := validate.Var(s, "required,eth_addr"); err != nil {
		return common.Address{}, invalid(field, "must be a 0x-prefixed 20 byte hex address")
	}
	return common.HexToAddress(s), nil
}

func positive(field string, v *big.Int) error {
	if v == nil || v.Sign() <= 0 {
		return invalid(field, "must be greater than zero")
	}
	return nil
}

func (b *Builder) build(action string, contract *abi.ABI, from, to common.Address, val *big.Int, method string, args ...interface{}) (Request, error) {
	data, err := contract.Pack(method, args...)
	if err != nil {
		return Request{}, invalid("arguments", err.Error())
	}
	req := Request{
		Action: action,
		Tx:     models.TxRequest{From: from, To: to, Data: data, Value: value(val)},
	}
	return req, req.Validate()
}

func deployed(field string, a common.Address) error {
	if a == (common.Address{}) {
		return invalid(field, "contract is not deployed on this chain")
	}
	return nil
}

// Approve lets spender move amount of token on behalf of from
func (b *Builder) Approve(from, token, spender string, amount *big.Int) (Request, error) {
	fromAddr, err := address("from", from)
	if err != nil {
		return Request{}, err
	}
	tokenAddr, err := address("token", token)
	if err != nil {
		return Request{}, err
	}
	spenderAddr, err := address("spender", spender)
	if err != nil {
		return Request{}, err
	}
	if err := positive("amount", amount); err != nil {
		return Request{}, err
	}
	return b.build("approve", &b.abis.ERC20, fromAddr, tokenAddr, nil, "approve", spenderAddr, amount)
}

// Contribute sends amount to a presale. Native-currency presales carry the
// amount as transaction value; token presales need a prior Approve.
func (b *Builder) Contribute(from, presale string, amount *big.Int, native bool) (Request, error) {
	fromAddr, err := address("from", from)
	if err != nil {
		return Request{}, err
	}
	presaleAddr, err := address("presale", presale)
	if err != nil {
		return Request{}, err
	}
	if err := positive("amount", amount); err != nil {
		return Request{}, err
	}
	var val *big.Int
	if native {
		val = amount
	}
	req, err := b.build("contribute", &b.abis.Presale, fromAddr, presaleAddr, val, "contribute", amount)
	req.Invalidates = []models.Invalidation{
		{Kind: models.KindPresale, Address: presale},
		{Kind: models.KindUserTokens, Address: from},
	}
	return req, err
}

func (b *Builder) presaleCall(action, from, presale string, invalidates ...models.Invalidation) (Request, error) {
	fromAddr, err := address("from", from)
	if err != nil {
		return Request{}, err
	}
	presaleAddr, err := address("presale", presale)
	if err != nil {
		return Request{}, err
	}
	req, err := b.build(action, &b.abis.Presale, fromAddr, presaleAddr, nil, action)
	req.Invalidates = append([]models.Invalidation{{Kind: models.KindPresale, Address: presale}}, invalidates...)
	return req, err
}

// Claim collects purchased tokens from a finalized presale
func (b *Builder) Claim(from, presale string) (Request, error) {
	return b.presaleCall("claim", from, presale, models.Invalidation{Kind: models.KindUserTokens, Address: from})
}

// Refund returns a contribution from a cancelled presale
func (b *Builder) Refund(from, presale string) (Request, error) {
	return b.presaleCall("refund", from, presale, models.Invalidation{Kind: models.KindUserTokens, Address: from})
}

// Finalize closes an ended presale and enables claims
func (b *Builder) Finalize(from, presale string) (Request, error) {
	return b.presaleCall("finalize", from, presale, models.Invalidation{Kind: models.KindPresaleAddresses})
}

// Cancel closes an ended presale and enables refunds
func (b *Builder) Cancel(from, presale string) (Request, error) {
	return b.presaleCall("cancel", from, presale, models.Invalidation{Kind: models.KindPresaleAddresses})
}

// Lock locks amount of token until unlockDate (unix seconds)
func (b *Builder) Lock(from, token string, amount *big.Int, unlockDate int64, description string, fee *big.Int) (Request, error) {
	fromAddr, err := address("from", from)
	if err != nil {
		return Request{}, err
	}
	tokenAddr, err := address("token", token)
	if err != nil {
		return Request{}, err
	}
	if err := positive("amount", amount); err != nil {
		return Request{}, err
	}
	if unlockDate <= 0 {
		return Request{}, invalid("unlock_date", "must be a unix timestamp")
	}
	c, err := b.contracts()
	if err != nil {
		return Request{}, err
	}
	if err := deployed("token_locker", c.TokenLocker); err != nil {
		return Request{}, err
	}
	req, err := b.build("lock", &b.abis.TokenLocker, fromAddr, c.TokenLocker, fee,
		"lock", tokenAddr, amount, big.NewInt(unlockDate), description)
	req.Invalidates = []models.Invalidation{
		{Kind: models.KindUserLocks, Address: from},
		{Kind: models.KindUserTokens, Address: from},
	}
	return req, err
}

// WithdrawLock withdraws an expired lock
func (b *Builder) WithdrawLock(from, lockID string) (Request, error) {
	fromAddr, err := address("from", from)
	if err != nil {
		return Request{}, err
	}
	id, ok := new(big.Int).SetString(lockID, 10)
	if !ok || id.Sign() < 0 {
		return Request{}, invalid("lock_id", "must be a non-negative integer")
	}
	c, err := b.contracts()
	if err != nil {
		return Request{}, err
	}
	if err := deployed("token_locker", c.TokenLocker); err != nil {
		return Request{}, err
	}
	req, err := b.build("withdraw_lock", &b.abis.TokenLocker, fromAddr, c.TokenLocker, nil, "withdraw", id)
	req.Invalidates = []models.Invalidation{
		{Kind: models.KindUserLocks, Address: from, LockID: id.String()},
		{Kind: models.KindUserTokens, Address: from},
	}
	return req, err
}

// Airdrop sends amounts[i] of token to recipients[i]. An empty token sends
// the native currency.
func (b *Builder) Airdrop(from, token string, recipients []string, amounts []*big.Int, fee *big.Int) (Request, error) {
	fromAddr, err := address("from", from)
	if err != nil {
		return Request{}, err
	}
	if len(recipients) == 0 {
		return Request{}, invalid("recipients", "must not be empty")
	}
	if len(recipients) != len(amounts) {
		return Request{}, invalid("amounts", "must have one amount per recipient")
	}
	if len(recipients) > maxBulkRecipients {
		return Request{}, invalid("recipients", "too many recipients for one transaction")
	}
	if err := validate.Var(recipients, "dive,required,eth_addr"); err != nil {
		return Request{}, invalid("recipients", "every recipient must be a hex address")
	}

	addrs := make([]common.Address, len(recipients))
	total := new(big.Int)
	for i, r := range recipients {
		addrs[i] = common.HexToAddress(r)
		if err := positive("amounts", amounts[i]); err != nil {
			return Request{}, err
		}
		total.Add(total, amounts[i])
	}

	c, err := b.contracts()
	if err != nil {
		return Request{}, err
	}
	if err := deployed("airdrop", c.Airdrop); err != nil {
		return Request{}, err
	}

	if strings.TrimSpace(token) == "" {
		return b.build("airdrop", &b.abis.Airdrop, fromAddr, c.Airdrop, total.Add(total, value(fee)),
			"multisendEther", addrs, amounts)
	}
	tokenAddr, err := address("token", token)
	if err != nil {
		return Request{}, err
	}
	req, err := b.build("airdrop", &b.abis.Airdrop, fromAddr, c.Airdrop, fee, "multisendToken", tokenAddr, addrs, amounts)
	req.Invalidates = []models.Invalidation{{Kind: models.KindUserTokens, Address: from}}
	return req, err
}

// Stake stakes amount in the staking contract
func (b *Builder) Stake(from string, amount *big.Int) (Request, error) {
	fromAddr, err := address("from", from)
	if err != nil {
		return Request{}, err
	}
	if err := positive("amount", amount); err != nil {
		return Request{}, err
	}
	c, err := b.contracts()
	if err != nil {
		return Request{}, err
	}
	if err := deployed("staking", c.Staking); err != nil {
		return Request{}, err
	}
	return b.build("stake", &b.abis.Staking, fromAddr, c.Staking, nil, "stake", amount)
}

// CreateToken deploys an ERC-20 through the token factory
func (b *Builder) CreateToken(from, name, symbol string, decimals uint8, totalSupply, fee *big.Int) (Request, error) {
	fromAddr, err := address("from", from)
	if err != nil {
		return Request{}, err
	}
	if strings.TrimSpace(name) == "" {
		return Request{}, invalid("name", "must not be empty")
	}
	if strings.TrimSpace(symbol) == "" {
		return Request{}, invalid("symbol", "must not be empty")
	}
	if err := positive("total_supply", totalSupply); err != nil {
		return Request{}, err
	}
	c, err := b.contracts()
	if err != nil {
		return Request{}, err
	}
	req, err := b.build("create_token", &b.abis.TokenFactory, fromAddr, c.TokenFactory, fee,
		"createToken", name, symbol, decimals, totalSupply)
	req.Invalidates = []models.Invalidation{{Kind: models.KindUserTokens, Address: from}}
	return req, err
}
