package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCacheMetrics(t *testing.T) {
	// Metrics are package-level variables, automatically registered.
	// These checks verify the helpers don't panic and move the right series.

	t.Run("RecordStoreLookup", func(t *testing.T) {
		before := testutil.ToFloat64(StoreLookups.WithLabelValues("user_tokens", "hit"))
		RecordStoreLookup("user_tokens", true)
		RecordStoreLookup("user_tokens", false)
		assert.Equal(t, before+1, testutil.ToFloat64(StoreLookups.WithLabelValues("user_tokens", "hit")))
	})

	t.Run("RecordFetch", func(t *testing.T) {
		before := testutil.ToFloat64(Fetches.WithLabelValues("markets", "error"))
		RecordFetch("markets", errors.New("rpc down"))
		assert.Equal(t, before+1, testutil.ToFloat64(Fetches.WithLabelValues("markets", "error")))
	})

	t.Run("TimeFetch", func(t *testing.T) {
		timer := TimeFetch("markets")
		timer()
	})

	t.Run("RecordCallCacheRequest", func(t *testing.T) {
		RecordCallCacheRequest("permanent", "L1")
	})

	t.Run("RecordCacheError", func(t *testing.T) {
		RecordCacheError("l1", "encode")
	})

	t.Run("UpdateL1CacheCapacity", func(t *testing.T) {
		UpdateL1CacheCapacity(1000000)
		assert.Equal(t, float64(1000000), testutil.ToFloat64(CacheCapacity.WithLabelValues("l1")))
	})

	t.Run("UpdateCacheKeys", func(t *testing.T) {
		UpdateCacheKeys("l1", 1000)
		assert.Equal(t, float64(1000), testutil.ToFloat64(CacheKeys.WithLabelValues("l1")))
	})

	t.Run("RecordTxPhase", func(t *testing.T) {
		RecordTxPhase("contribute", "pending")
	})

	t.Run("RecordPersist", func(t *testing.T) {
		RecordPersist("save", nil)
		RecordPersist("load", errors.New("corrupt"))
	})

	t.Run("RecordChainSwitch", func(t *testing.T) {
		before := testutil.ToFloat64(ChainSwitches)
		RecordChainSwitch()
		assert.Equal(t, before+1, testutil.ToFloat64(ChainSwitches))
	})
}
