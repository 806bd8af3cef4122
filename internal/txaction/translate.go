package txaction

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"

	"go-reactpad-cache/internal/chain"
)

// userRejectedCode is the EIP-1193 code for a request the user declined
const userRejectedCode = 4001

const fallbackMessage = "Transaction failed. Please try again."

var (
	revertSelector = []byte{0x08, 0xc3, 0x79, 0xa0} // Error(string)
	panicSelector  = []byte{0x4e, 0x48, 0x7b, 0x71} // Panic(uint256)
)

// customErrorMessages maps contract custom errors to user-facing text
var customErrorMessages = map[string]string{
	"NotWhitelisted":             "Your address is not whitelisted for this presale.",
	"PresaleNotActive":           "This presale is not accepting contributions right now.",
	"PresaleNotEnded":            "This presale has not ended yet.",
	"HardCapExceeded":            "This contribution would exceed the presale hard cap.",
	"SoftCapNotReached":          "The presale did not reach its soft cap.",
	"BelowMinContribution":       "The amount is below the minimum contribution.",
	"AboveMaxContribution":       "The amount is above the maximum contribution.",
	"ClaimNotEnabled":            "Claiming is not enabled yet.",
	"RefundsNotEnabled":          "Refunds are not enabled for this presale.",
	"NothingToClaim":             "There is nothing to claim for this address.",
	"AlreadyFinalized":           "This presale was already finalized.",
	"NotOwner":                   "Only the presale owner can do this.",
	"LockNotExpired":             "This lock has not reached its unlock date.",
	"AlreadyWithdrawn":           "This lock was already withdrawn.",
	"NotLockOwner":               "Only the lock owner can withdraw it.",
	"InvalidUnlockDate":          "The unlock date must be in the future.",
	"InsufficientFee":            "The fee sent is too low.",
	"InsufficientStake":          "You cannot unstake more than you staked.",
	"LengthMismatch":             "Recipient and amount lists must have the same length.",
	"ERC20InsufficientBalance":   "Insufficient token balance.",
	"ERC20InsufficientAllowance": "Token allowance is too low. Approve the token first.",
}

// reasonPatterns maps substrings of revert reason strings to user-facing text
var reasonPatterns = []struct {
	pattern string
	message string
}{
	{"not whitelisted", "Your address is not whitelisted for this presale."},
	{"hard cap", "This contribution would exceed the presale hard cap."},
	{"insufficient allowance", "Token allowance is too low. Approve the token first."},
	{"transfer amount exceeds balance", "Insufficient token balance."},
	{"not started", "This presale has not started yet."},
	{"ended", "This presale has already ended."},
}

// TranslateError turns a wallet or contract error into a message for the user
func TranslateError(err error, abis *chain.ABIs) string {
	if err == nil {
		return ""
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Error()
	}

	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) && rpcErr.ErrorCode() == userRejectedCode {
		return "Transaction was rejected in the wallet."
	}

	if data, ok := revertData(err); ok {
		if msg, ok := translateRevert(data, abis); ok {
			return msg
		}
	}

	lower := strings.ToLower(err.Error())
	switch {
	case strings.Contains(lower, "user rejected"), strings.Contains(lower, "user denied"):
		return "Transaction was rejected in the wallet."
	case strings.Contains(lower, "insufficient funds"):
		return "Insufficient balance to pay for gas and value."
	case errors.Is(err, context.DeadlineExceeded):
		return "Timed out waiting for the transaction."
	case errors.Is(err, ErrReverted):
		return "Transaction reverted on-chain."
	}
	for _, p := range reasonPatterns {
		if strings.Contains(lower, p.pattern) {
			return p.message
		}
	}
	return fallbackMessage
}

// revertData extracts the revert payload carried by a JSON-RPC error
func revertData(err error) ([]byte, bool) {
	var dataErr rpc.DataError
	if !errors.As(err, &dataErr) {
		return nil, false
	}
	switch v := dataErr.ErrorData().(type) {
	case string:
		data, decodeErr := hexutil.Decode(v)
		if decodeErr != nil {
			return nil, false
		}
		return data, true
	case []byte:
		return v, true
	default:
		return nil, false
	}
}

func translateRevert(data []byte, abis *chain.ABIs) (string, bool) {
	if len(data) < 4 {
		return "", false
	}

	switch {
	case bytes.Equal(data[:4], revertSelector):
		reason, err := abi.UnpackRevert(data)
		if err != nil {
			return "", false
		}
		lower := strings.ToLower(reason)
		for _, p := range reasonPatterns {
			if strings.Contains(lower, p.pattern) {
				return p.message, true
			}
		}
		return "Transaction reverted: " + reason, true
	case bytes.Equal(data[:4], panicSelector):
		return "Transaction reverted because the contract hit an internal error.", true
	}

	if abis == nil {
		return "", false
	}
	contractErr, ok := abis.ErrorBySelector(data)
	if !ok {
		return "", false
	}
	if msg, ok := customErrorMessages[contractErr.Name]; ok {
		return msg, true
	}
	return fmt.Sprintf("Transaction reverted: %s.", contractErr.Name), true
}
