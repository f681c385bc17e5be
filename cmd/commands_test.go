package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"erp/internal/ledger"
)

// run executes rootCmd with args and returns what the command wrote to its
// output. Flag values persist on the package level commands between runs,
// so they are reset first.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const ledgerCSV = `id,date,kind,amount,customer_id,reference
s1,2025-03-01,sale,100,C-1,S-1
r1,2025-03-02,receipt,60,C-1,R-1
s2,2025-03-02,sale,50,C-1,S-2
p1,2025-03-03,purchase,30,C-1,P-1
`

func TestDocumentCommandJSON(t *testing.T) {
	path := writeFile(t, "lines.csv", "quantity,unit_price,tax\n10,1000,separate\n10,1100,포함\n")

	out, err := run(t, "document", path, "--json")
	require.NoError(t, err)
	require.True(t, json.Valid([]byte(out)), out)

	var totals struct {
		Lines      []json.RawMessage `json:"lines"`
		GrandTotal int64             `json:"grand_total"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &totals))
	assert.Len(t, totals.Lines, 2)
	assert.Equal(t, int64(22000), totals.GrandTotal)
}

func TestDocumentCommandTable(t *testing.T) {
	path := writeFile(t, "lines.csv", "quantity,unit_price,tax\n10,1000,separate\n")

	out, err := run(t, "document", path)
	require.NoError(t, err)
	assert.Contains(t, out, "11,000")
	assert.Contains(t, out, "별도")
}

func TestLineCommandJSON(t *testing.T) {
	out, err := run(t, "line", "--qty", "10", "--price", "1100", "--tax", "inclusive", "--json")
	require.NoError(t, err)
	require.True(t, json.Valid([]byte(out)), out)
	assert.Contains(t, out, `"vat_amount": 1000`)
}

func TestLedgerCommandStatementJSON(t *testing.T) {
	path := writeFile(t, "events.csv", ledgerCSV)

	out, err := run(t, "ledger", path, "--json")
	require.NoError(t, err)
	require.True(t, json.Valid([]byte(out)), out)

	var lines []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &lines))
	require.Len(t, lines, 4)
	assert.Equal(t, "120", lines[3]["balance"])
}

func TestLedgerCommandBalances(t *testing.T) {
	path := writeFile(t, "events.csv", ledgerCSV)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"as of date includes the day", []string{"--as-of", "2025-03-02"}, "잔액: 90\n"},
		{"before date excludes the day", []string{"--before", "2025-03-02"}, "전잔액: 100\n"},
		{"exclude id keeps earlier same day events", []string{"--exclude-id", "s2"}, "전잔액: 40\n"},
		{"exclude id with opening", []string{"--exclude-id", "p1", "--opening", "1000"}, "전잔액: 1,090\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, append([]string{"ledger", path}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestLedgerCommandBalanceJSON(t *testing.T) {
	path := writeFile(t, "events.csv", ledgerCSV)

	out, err := run(t, "ledger", path, "--exclude-id", "s2", "--json")
	require.NoError(t, err)
	require.True(t, json.Valid([]byte(out)), out)
	assert.JSONEq(t, `{"balance": "40"}`, out)
}

func TestLedgerCommandErrors(t *testing.T) {
	path := writeFile(t, "events.csv", ledgerCSV)

	_, err := run(t, "ledger", path, "--as-of", "2025-03-02", "--before", "2025-03-02")
	assert.Error(t, err)

	_, err = run(t, "ledger", path, "--exclude-id", "missing")
	assert.ErrorIs(t, err, ledger.ErrEventNotFound)

	mixed := writeFile(t, "mixed.csv", ledgerCSV+"x1,2025-03-04,sale,5,C-2,S-9\n")
	_, err = run(t, "ledger", mixed)
	assert.ErrorIs(t, err, ledger.ErrMixedCustomers)

	out, err := run(t, "ledger", mixed, "--customer", "C-2")
	require.NoError(t, err)
	assert.Contains(t, out, "S-9")
}
