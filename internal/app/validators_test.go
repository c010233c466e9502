package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/budget"
	"tally/internal/logging"
	"tally/internal/storage"
	"tally/internal/validate"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	store, err := storage.NewCSVStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	log, err := logging.Init(logging.Config{})
	require.NoError(t, err)
	return New(store, log)
}

// one runs a validator over a single token and reports the value it
// yields, nil when the token is rejected.
func one(t *testing.T, v validate.Validator, token string) any {
	t.Helper()
	val, err := v.Apply(validate.NewArgs([]string{token}))
	require.NoError(t, err)
	return val
}

func TestVMonth(t *testing.T) {
	assert.Equal(t, budget.July, one(t, vMonth(true), "july"))
	assert.Equal(t, budget.July, one(t, vMonth(true), "Jul"))
	assert.Equal(t, budget.September, one(t, vMonth(true), "sep"))
	assert.Nil(t, one(t, vMonth(true), "2021"))

	// "a" prefixes All first; without it, April wins.
	assert.Equal(t, budget.All, one(t, vMonth(true), "a"))
	assert.Equal(t, budget.April, one(t, vMonth(false), "a"))
	assert.Nil(t, one(t, vMonth(false), "all"))
}

func TestVYear(t *testing.T) {
	assert.Equal(t, 2021, one(t, vYear(), "2021"))
	assert.Nil(t, one(t, vYear(), "021"))
	assert.Nil(t, one(t, vYear(), "20211"))
	assert.Nil(t, one(t, vYear(), "21st"))
}

func TestVDay(t *testing.T) {
	assert.Equal(t, 1, one(t, vDay(), "1"))
	assert.Equal(t, 31, one(t, vDay(), "31"))
	assert.Nil(t, one(t, vDay(), "0"))
	assert.Nil(t, one(t, vDay(), "32"))
	assert.Nil(t, one(t, vDay(), "x"))
}

func TestVID(t *testing.T) {
	assert.Equal(t, 7, one(t, vID(), "7"))
	assert.Nil(t, one(t, vID(), "-7"))
	assert.Nil(t, one(t, vID(), "seven"))
}

func TestVType(t *testing.T) {
	assert.Equal(t, "income", one(t, vType(), "income"))
	assert.Equal(t, "expense", one(t, vType(), "expense"))
	assert.Equal(t, "expense", one(t, vType(), "expenses"))
	assert.Equal(t, "income", one(t, vType(), "INCOME"))
	assert.Nil(t, one(t, vType(), "inc"))
}

func TestVAmount(t *testing.T) {
	assert.Equal(t, 30000, one(t, vAmount(false), "+300"))
	assert.Equal(t, -4500, one(t, vAmount(false), "-45"))
	assert.Nil(t, one(t, vAmount(false), "300"))
	assert.Nil(t, one(t, vAmount(false), "+3.50"))
	assert.Nil(t, one(t, vAmount(false), "+1000000"))

	// Zero needs the explicit allowance.
	assert.Nil(t, one(t, vAmount(false), "+0"))
	assert.Equal(t, 0, one(t, vAmount(true), "+0"))
	assert.Equal(t, 0, one(t, vAmount(true), "0"))
}

func TestVTarget(t *testing.T) {
	a := newTestApp(t)
	_, err := a.store.AddTarget(budget.Target{Name: "food", DefaultAmount: -50000})
	require.NoError(t, err)

	assert.Equal(t, "food", one(t, a.vTarget(), "food"))
	assert.Equal(t, "food", one(t, a.vTarget(), "FOOD"))
	assert.Nil(t, one(t, a.vTarget(), "rent"))

	// Reserved words and overlong names never match, existing or not.
	for _, word := range []string{"all", "income", "default", "january", "entries"} {
		assert.Nil(t, one(t, a.vTarget(), word), word)
		assert.Nil(t, one(t, a.vNewTarget(), word), word)
	}
	long := "extravagances"
	assert.Nil(t, one(t, a.vTarget(), long))
	assert.Nil(t, one(t, a.vNewTarget(), long))
}

func TestVNewTarget(t *testing.T) {
	a := newTestApp(t)
	_, err := a.store.AddTarget(budget.Target{Name: "food", DefaultAmount: -50000})
	require.NoError(t, err)

	assert.Equal(t, "rent", one(t, a.vNewTarget(), "rent"))
	assert.Equal(t, "rent", one(t, a.vNewTarget(), "Rent"))
	assert.Nil(t, one(t, a.vNewTarget(), "food"))
}
