package folio

import (
	"encoding/json"
	"testing"

	"github.com/etnz/folio/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValuation_Rounding(t *testing.T) {
	s := mustDecode(t, `{
		"positions": [
			{"ticker": "A", "quantity": 3, "entryPrice": 0.1, "currentPrice": 0.105},
			{"ticker": "B", "quantity": 1, "entryPrice": 0.2},
			{"ticker": "C", "quantity": 7}
		],
		"transactions": [{"type": "dividend", "amount": 0.1}, {"type": "dividend", "amount": 0.2}]
	}`)
	got := s.Valuation(date.New(2025, 3, 10))

	// 3×0.105 + 1×0.2 = 0.515, exactly; rounded half away from zero.
	assert.Equal(t, 0.52, got.PortfolioValue)
	assert.Equal(t, 0.5, got.CapitalEngaged)
	assert.Equal(t, 0.02, got.UnrealizedPnL)
	assert.Equal(t, 0.3, got.TotalDividends)
	assert.Equal(t, 3, got.PositionCount)
}

func TestSnapshots_Put(t *testing.T) {
	var h Snapshots
	require.NoError(t, json.Unmarshal([]byte(`[{"date": "2025-03-05", "x": 1}, {"date": "2025-03-01"}]`), &h))

	replaced, err := h.Put(Snapshot{Date: date.New(2025, 3, 3), PortfolioValue: 3})
	require.NoError(t, err)
	assert.False(t, replaced)
	assert.Equal(t, []string{"2025-03-01", "2025-03-03", "2025-03-05"}, h.dates())

	replaced, err = h.Put(Snapshot{Date: date.New(2025, 3, 5), PortfolioValue: 5})
	require.NoError(t, err)
	assert.True(t, replaced)
	assert.Equal(t, 3, h.Len())

	b, err := json.Marshal(h)
	require.NoError(t, err)
	assert.NotContains(t, string(b), `"x"`, "a replaced snapshot is replaced as a whole")

	latest, ok := h.Latest()
	require.True(t, ok)
	assert.Equal(t, 5.0, latest.PortfolioValue)
}

func TestSnapshots_LenientDates(t *testing.T) {
	var h Snapshots
	require.NoError(t, json.Unmarshal([]byte(`[{"date": "2025-3-7", "note": "typed by hand"}, {"date": "2025-03-10"}]`), &h))

	// 2025-03-08 sorts after 2025-3-7 even though "2025-03-08" < "2025-3-7" as text.
	replaced, err := h.Put(Snapshot{Date: date.New(2025, 3, 8), PortfolioValue: 8})
	require.NoError(t, err)
	assert.False(t, replaced)
	assert.Equal(t, []string{"2025-03-07", "2025-03-08", "2025-03-10"}, h.dates())

	replaced, err = h.Put(Snapshot{Date: date.New(2025, 3, 7), PortfolioValue: 7})
	require.NoError(t, err)
	assert.True(t, replaced, "2025-3-7 and 2025-03-07 are the same day")
	assert.Equal(t, 3, h.Len())

	got, ok := h.Get(date.New(2025, 3, 7))
	require.True(t, ok)
	assert.Equal(t, 7.0, got.PortfolioValue)
}

func TestSnapshots_Empty(t *testing.T) {
	var h Snapshots
	_, ok := h.Latest()
	assert.False(t, ok)

	b, err := json.Marshal(h)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}
