package classifier

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDataset(t *testing.T) {
	input := strings.Join([]string{
		"Text,Label",
		"bought milk,purchase",
		`"paid 5,50 for coffee",purchase`,
		"need a report, task ",
		"missing label",
		"blank label,",
		"",
		"meeting at 10,task,extra",
	}, "\n")

	examples, err := ParseDataset(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []Example{
		{Text: "bought milk", Label: "purchase"},
		{Text: "paid 5,50 for coffee", Label: "purchase"},
		{Text: "need a report", Label: "task"},
		{Text: "meeting at 10", Label: "task"},
	}, examples)
}

func TestParseDataset_HeaderOnly(t *testing.T) {
	examples, err := ParseDataset(strings.NewReader("Text,Label\n"))
	require.NoError(t, err)
	assert.Empty(t, examples)
}

func TestReadDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "purpose.csv")
	require.NoError(t, os.WriteFile(path, []byte("Text,Purpose\nкупил хлеб,еда\ntaxi home,transport\n"), 0o600))

	examples, err := ReadDataset(path)
	require.NoError(t, err)
	require.Len(t, examples, 2)
	assert.Equal(t, "еда", examples[0].Label)

	_, err = ReadDataset(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
