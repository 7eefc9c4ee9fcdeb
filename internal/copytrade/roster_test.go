package copytrade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoster_Ranges(t *testing.T) {
	r := NewSeededRoster(11)

	for range 100 {
		traders := r.Traders()
		require.Len(t, traders, len(profiles))

		for i, tr := range traders {
			p := profiles[i]
			assert.Equal(t, p.id, tr.ID)
			assert.Equal(t, p.name, tr.Name)
			assert.GreaterOrEqual(t, tr.Performance, p.perfLo)
			assert.LessOrEqual(t, tr.Performance, p.perfHi)
			assert.GreaterOrEqual(t, tr.Trades, p.tradesLo)
			assert.LessOrEqual(t, tr.Trades, p.tradesHi)
			assert.GreaterOrEqual(t, tr.WinRate, p.winLo)
			assert.LessOrEqual(t, tr.WinRate, p.winHi)
			assert.False(t, tr.IsFollowing)
		}
	}
}

func TestRoster_Has(t *testing.T) {
	r := NewSeededRoster(1)
	assert.True(t, r.Has("1"))
	assert.True(t, r.Has("5"))
	assert.False(t, r.Has("6"))
	assert.False(t, r.Has(""))
}
