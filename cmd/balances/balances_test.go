package balances_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/debtsolver/cmd/balances"
	"fjacquet/debtsolver/cmd/root"
	"fjacquet/debtsolver/internal/config"
	"fjacquet/debtsolver/internal/container"
	"fjacquet/debtsolver/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const journalYAML = `currency: EUR
transactions:
  - debtor: Alice
    creditor: Bob
    amount: "10"
  - debtors: [Bob, Charlie]
    creditors: [Alice]
    amount: "4.50"
`

func TestBalancesCommand_Metadata(t *testing.T) {
	assert.Equal(t, "balances", balances.Cmd.Use)
	assert.Contains(t, balances.Cmd.Short, "net balance")
	assert.NotNil(t, balances.Cmd.RunE)
}

func TestBalancesCommand_PrintsTable(t *testing.T) {
	originalContainer := root.AppContainer
	originalFlags := root.SharedFlags
	defer func() {
		root.AppContainer = originalContainer
		root.SharedFlags = originalFlags
	}()

	path := filepath.Join(t.TempDir(), "journal.yaml")
	require.NoError(t, os.WriteFile(path, []byte(journalYAML), 0600))

	c, err := container.NewContainerWithLogger(config.Default(), logging.NewMockLogger())
	require.NoError(t, err)
	root.AppContainer = c
	root.SharedFlags = root.CommonFlags{Input: path}

	var out bytes.Buffer
	balances.Cmd.SetOut(&out)
	defer balances.Cmd.SetOut(nil)

	require.NoError(t, balances.Cmd.RunE(balances.Cmd, nil))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "PARTY")
	assert.Contains(t, lines[0], "BALANCE")
	assert.Contains(t, lines[1], "Alice")
	assert.Contains(t, lines[1], "€-5.50")
	assert.Contains(t, lines[2], "Bob")
	assert.Contains(t, lines[2], "€7.75")
	assert.Contains(t, lines[3], "Charlie")
	assert.Contains(t, lines[3], "€-2.25")
}

func TestBalancesCommand_RequiresInput(t *testing.T) {
	originalContainer := root.AppContainer
	originalFlags := root.SharedFlags
	defer func() {
		root.AppContainer = originalContainer
		root.SharedFlags = originalFlags
	}()

	c, err := container.NewContainerWithLogger(config.Default(), logging.NewMockLogger())
	require.NoError(t, err)
	root.AppContainer = c
	root.SharedFlags = root.CommonFlags{}

	err = balances.Cmd.RunE(balances.Cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--input")
}
