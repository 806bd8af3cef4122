package txaction

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-reactpad-cache/internal/chain"
	"go-reactpad-cache/internal/models"
)

const testRegistry = `
chains:
  - chain_id: 97
    name: BNB Testnet
    rpc_url: https://data-seed-prebsc-1-s1.binance.org:8545
    contracts:
      token_factory: "0x2000000000000000000000000000000000000001"
      presale_factory: "0x2000000000000000000000000000000000000002"
      token_locker: "0x2000000000000000000000000000000000000003"
      airdrop: "0x2000000000000000000000000000000000000004"
      staking: "0x2000000000000000000000000000000000000006"
  - chain_id: 1337
    name: Local
    rpc_url: http://127.0.0.1:8545
    contracts:
      token_factory: "0x3000000000000000000000000000000000000001"
      presale_factory: "0x3000000000000000000000000000000000000002"
      token_locker: "0x3000000000000000000000000000000000000003"
`

const (
	user    = "0xAbCdEf0000000000000000000000000000000001"
	presale = "0x4000000000000000000000000000000000000001"
	token   = "0x5000000000000000000000000000000000000001"
)

func newTestBuilder(t *testing.T) (*Builder, *chain.ABIs) {
	t.Helper()
	registry, err := chain.ParseRegistry([]byte(testRegistry))
	require.NoError(t, err)
	abis := chain.MustABIs()
	return NewBuilder(abis, registry, 97), abis
}

func unpackArgs(t *testing.T, contract *abi.ABI, method string, data []byte) []interface{} {
	t.Helper()
	m := contract.Methods[method]
	require.Equal(t, m.ID, data[:4], "selector of %s", method)
	args, err := m.Inputs.Unpack(data[4:])
	require.NoError(t, err)
	return args
}

func requireValidation(t *testing.T, err error, field string) {
	t.Helper()
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr), "expected validation error, got %v", err)
	assert.Equal(t, field, validationErr.Field)
}

func TestBuilder_Approve(t *testing.T) {
	b, abis := newTestBuilder(t)

	req, err := b.Approve(user, token, presale, big.NewInt(1000))
	require.NoError(t, err)

	assert.Equal(t, "approve", req.Action)
	assert.Equal(t, common.HexToAddress(user), req.Tx.From)
	assert.Equal(t, common.HexToAddress(token), req.Tx.To)
	assert.Equal(t, 0, req.Tx.Value.Sign())
	args := unpackArgs(t, &abis.ERC20, "approve", req.Tx.Data)
	assert.Equal(t, common.HexToAddress(presale), args[0])
	assert.Equal(t, big.NewInt(1000), args[1])
}

func TestBuilder_Contribute(t *testing.T) {
	b, abis := newTestBuilder(t)

	t.Run("native currency carries value", func(t *testing.T) {
		req, err := b.Contribute(user, presale, big.NewInt(5e17), true)
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(5e17), req.Tx.Value)
		args := unpackArgs(t, &abis.Presale, "contribute", req.Tx.Data)
		assert.Equal(t, big.NewInt(5e17), args[0])
		assert.Contains(t, req.Invalidates, models.Invalidation{Kind: models.KindPresale, Address: presale})
	})

	t.Run("token presale sends no value", func(t *testing.T) {
		req, err := b.Contribute(user, presale, big.NewInt(100), false)
		require.NoError(t, err)
		assert.Equal(t, 0, req.Tx.Value.Sign())
	})
}

func TestBuilder_Validation(t *testing.T) {
	b, _ := newTestBuilder(t)

	_, err := b.Contribute("0x123", presale, big.NewInt(1), true)
	requireValidation(t, err, "from")

	_, err = b.Contribute(user, "not-an-address", big.NewInt(1), true)
	requireValidation(t, err, "presale")

	_, err = b.Contribute(user, presale, big.NewInt(0), true)
	requireValidation(t, err, "amount")

	_, err = b.Approve(user, token, presale, big.NewInt(-5))
	requireValidation(t, err, "amount")

	_, err = b.Approve(user, token, presale, nil)
	requireValidation(t, err, "amount")

	_, err = b.Lock(user, token, big.NewInt(1), 0, "", nil)
	requireValidation(t, err, "unlock_date")

	_, err = b.WithdrawLock(user, "abc")
	requireValidation(t, err, "lock_id")

	_, err = b.CreateToken(user, " ", "TKN", 18, big.NewInt(1), nil)
	requireValidation(t, err, "name")
}

func TestBuilder_PresaleLifecycle(t *testing.T) {
	b, abis := newTestBuilder(t)

	for _, method := range []string{"claim", "refund", "finalize", "cancel"} {
		var (
			req Request
			err error
		)
		switch method {
		case "claim":
			req, err = b.Claim(user, presale)
		case "refund":
			req, err = b.Refund(user, presale)
		case "finalize":
			req, err = b.Finalize(user, presale)
		case "cancel":
			req, err = b.Cancel(user, presale)
		}
		require.NoError(t, err, method)
		assert.Equal(t, method, req.Action)
		assert.Equal(t, abis.Presale.Methods[method].ID, req.Tx.Data[:4], method)
		assert.Equal(t, models.Invalidation{Kind: models.KindPresale, Address: presale}, req.Invalidates[0])
	}
}

func TestBuilder_LockAndWithdraw(t *testing.T) {
	b, abis := newTestBuilder(t)

	req, err := b.Lock(user, token, big.NewInt(500), 1735689600, "team tokens", big.NewInt(1e16))
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0x2000000000000000000000000000000000000003"), req.Tx.To)
	assert.Equal(t, big.NewInt(1e16), req.Tx.Value)
	args := unpackArgs(t, &abis.TokenLocker, "lock", req.Tx.Data)
	assert.Equal(t, common.HexToAddress(token), args[0])
	assert.Equal(t, big.NewInt(1735689600), args[2])
	assert.Equal(t, "team tokens", args[3])

	req, err = b.WithdrawLock(user, "42")
	require.NoError(t, err)
	args = unpackArgs(t, &abis.TokenLocker, "withdraw", req.Tx.Data)
	assert.Equal(t, big.NewInt(42), args[0])
	assert.Contains(t, req.Invalidates, models.Invalidation{Kind: models.KindUserLocks, Address: user, LockID: "42"})
}

func TestBuilder_Airdrop(t *testing.T) {
	b, abis := newTestBuilder(t)
	recipients := []string{
		"0x6000000000000000000000000000000000000001",
		"0x6000000000000000000000000000000000000002",
	}
	amounts := []*big.Int{big.NewInt(10), big.NewInt(20)}

	t.Run("token", func(t *testing.T) {
		req, err := b.Airdrop(user, token, recipients, amounts, nil)
		require.NoError(t, err)
		args := unpackArgs(t, &abis.Airdrop, "multisendToken", req.Tx.Data)
		assert.Equal(t, common.HexToAddress(token), args[0])
		assert.Len(t, args[1], 2)
	})

	t.Run("native sums value and fee", func(t *testing.T) {
		req, err := b.Airdrop(user, "", recipients, amounts, big.NewInt(5))
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(35), req.Tx.Value)
		unpackArgs(t, &abis.Airdrop, "multisendEther", req.Tx.Data)
	})

	t.Run("mismatched lengths", func(t *testing.T) {
		_, err := b.Airdrop(user, token, recipients, amounts[:1], nil)
		requireValidation(t, err, "amounts")
	})

	t.Run("bad recipient", func(t *testing.T) {
		_, err := b.Airdrop(user, token, []string{"0x1", recipients[1]}, amounts, nil)
		requireValidation(t, err, "recipients")
	})

	t.Run("empty", func(t *testing.T) {
		_, err := b.Airdrop(user, token, nil, nil, nil)
		requireValidation(t, err, "recipients")
	})
}

func TestBuilder_NotDeployed(t *testing.T) {
	b, _ := newTestBuilder(t)
	b.SetChainID(1337)

	_, err := b.Stake(user, big.NewInt(1))
	requireValidation(t, err, "staking")

	_, err = b.Airdrop(user, token, []string{presale}, []*big.Int{big.NewInt(1)}, nil)
	requireValidation(t, err, "airdrop")

	b.SetChainID(56)
	_, err = b.Stake(user, big.NewInt(1))
	assert.True(t, errors.Is(err, chain.ErrUnknownChain))
}

func TestBuilder_Stake(t *testing.T) {
	b, abis := newTestBuilder(t)

	req, err := b.Stake(user, big.NewInt(7))
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0x2000000000000000000000000000000000000006"), req.Tx.To)
	args := unpackArgs(t, &abis.Staking, "stake", req.Tx.Data)
	assert.Equal(t, big.NewInt(7), args[0])
}

func TestRequest_Validate(t *testing.T) {
	valid := Request{
		Action: "claim",
		Tx: models.TxRequest{
			From: common.HexToAddress(user),
			To:   common.HexToAddress(presale),
			Data: []byte{1, 2, 3, 4},
		},
	}
	require.NoError(t, valid.Validate())

	noData := valid
	noData.Tx.Data = nil
	requireValidation(t, noData.Validate(), "data")

	noTo := valid
	noTo.Tx.To = common.Address{}
	requireValidation(t, noTo.Validate(), "to")

	negative := valid
	negative.Tx.Value = big.NewInt(-1)
	requireValidation(t, negative.Validate(), "value")
}
