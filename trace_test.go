package parsec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gnoswap-labs/parsec"
)

func TestTrace(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	p := parsec.Trace(zap.New(core), "letter-a", parsec.Char('a'))

	assert.Equal(t, parsec.Char('a').Run("abc"), p.Run("abc"))
	assert.Equal(t, parsec.Char('a').Run("xyz"), p.Run("xyz"))

	assert.Equal(t, 2, logs.FilterMessage("parser enter").Len())
	require.Equal(t, 1, logs.FilterMessage("parser match").Len())
	assert.Equal(t, int64(1), logs.FilterMessage("parser match").All()[0].ContextMap()["consumed"])

	fails := logs.FilterMessage("parser fail").All()
	require.Len(t, fails, 1)
	assert.Equal(t, "char(a)", fails[0].ContextMap()["expected"])
	assert.Equal(t, "x", fails[0].ContextMap()["got"])
	assert.Equal(t, "letter-a", fails[0].ContextMap()["parser"])
}

func TestTraceWithoutLogger(t *testing.T) {
	t.Parallel()

	p := parsec.Trace(nil, "a", parsec.Char('a'))
	assert.Equal(t, "a", p.Run("a").Value())
}
