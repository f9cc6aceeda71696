package settle_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/debtsolver/cmd/root"
	"fjacquet/debtsolver/cmd/settle"
	"fjacquet/debtsolver/internal/config"
	"fjacquet/debtsolver/internal/container"
	"fjacquet/debtsolver/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const journalCSV = `debtors,creditors,amount
A,B,2
C,F,3
D,F,5
E,F,7
`

// setup wires a container and the shared flags the way the root command
// would, restoring the previous state when the test ends.
func setup(t *testing.T, input, output string) *logging.MockLogger {
	t.Helper()
	originalContainer := root.AppContainer
	originalFlags := root.SharedFlags
	t.Cleanup(func() {
		root.AppContainer = originalContainer
		root.SharedFlags = originalFlags
		for _, name := range []string{"group-size", "max-combinations"} {
			flag := settle.Cmd.Flags().Lookup(name)
			_ = flag.Value.Set(flag.DefValue)
			flag.Changed = false
		}
	})

	logger := logging.NewMockLogger()
	c, err := container.NewContainerWithLogger(config.Default(), logger)
	require.NoError(t, err)
	root.AppContainer = c
	root.SharedFlags = root.CommonFlags{Input: input, Output: output}
	return logger
}

func writeJournal(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal.csv")
	require.NoError(t, os.WriteFile(path, []byte(journalCSV), 0600))
	return path
}

func TestSettleCommand_Metadata(t *testing.T) {
	assert.Equal(t, "settle", settle.Cmd.Use)
	assert.Contains(t, settle.Cmd.Short, "settle a journal")
	assert.NotNil(t, settle.Cmd.RunE)

	groupSize := settle.Cmd.Flags().Lookup("group-size")
	require.NotNil(t, groupSize)
	assert.Equal(t, "g", groupSize.Shorthand)
	assert.Equal(t, "0", groupSize.DefValue)

	budget := settle.Cmd.Flags().Lookup("max-combinations")
	require.NotNil(t, budget)
	assert.Equal(t, "0", budget.DefValue)
}

func TestSettleCommand_PrintsPayments(t *testing.T) {
	logger := setup(t, writeJournal(t), "")

	var out bytes.Buffer
	settle.Cmd.SetOut(&out)
	defer settle.Cmd.SetOut(nil)

	require.NoError(t, settle.Cmd.RunE(settle.Cmd, nil))
	assert.Equal(t, "A owes B 2.00 USD\nC owes F 3.00 USD\nD owes F 5.00 USD\nE owes F 7.00 USD\n", out.String())
	assert.True(t, logger.HasEntry("INFO", "Settlement completed successfully!"))
}

func TestSettleCommand_GroupSizeFlag(t *testing.T) {
	logger := setup(t, writeJournal(t), "")
	require.NoError(t, settle.Cmd.Flags().Set("group-size", "2"))

	var out bytes.Buffer
	settle.Cmd.SetOut(&out)
	defer settle.Cmd.SetOut(nil)

	require.NoError(t, settle.Cmd.RunE(settle.Cmd, nil))
	assert.Contains(t, out.String(), "A owes B 2.00 USD")

	var settled bool
	for _, e := range logger.GetEntriesByLevel("INFO") {
		if e.Message == "Ledger settled" {
			size, _ := e.FieldValue(logging.FieldGroupSize)
			assert.Equal(t, 2, size)
			settled = true
		}
	}
	assert.True(t, settled)
}

func TestSettleCommand_WritesOutputFile(t *testing.T) {
	output := filepath.Join(t.TempDir(), "payments.csv")
	setup(t, writeJournal(t), output)

	require.NoError(t, settle.Cmd.RunE(settle.Cmd, nil))

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "debtor,creditor,amount,currency\nA,B,2.00,USD\nC,F,3.00,USD\nD,F,5.00,USD\nE,F,7.00,USD\n", string(content))
}

func TestSettleCommand_Errors(t *testing.T) {
	setup(t, "", "")
	err := settle.Cmd.RunE(settle.Cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--input")

	root.SharedFlags.Input = filepath.Join(t.TempDir(), "missing.csv")
	assert.Error(t, settle.Cmd.RunE(settle.Cmd, nil))

	root.SharedFlags.Input = filepath.Join(t.TempDir(), "journal.txt")
	assert.Error(t, settle.Cmd.RunE(settle.Cmd, nil))

	root.AppContainer = nil
	assert.Error(t, settle.Cmd.RunE(settle.Cmd, nil))
}

func TestSettleCommand_InputDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1.csv"), []byte("debtors,creditors,amount\nAlice,Bob,10\n"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2.yaml"), []byte("transactions:\n  - debtor: Bob\n    creditor: Charlie\n    amount: \"10\"\n"), 0600))
	setup(t, "", "")
	root.SharedFlags.InputDir = dir

	var out bytes.Buffer
	settle.Cmd.SetOut(&out)
	defer settle.Cmd.SetOut(nil)

	require.NoError(t, settle.Cmd.RunE(settle.Cmd, nil))
	assert.Equal(t, "Alice owes Charlie 10.00 USD\n", out.String())
}
