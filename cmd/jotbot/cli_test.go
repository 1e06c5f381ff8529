package main

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/Veraticus/jotbot/internal/common"
	"github.com/Veraticus/jotbot/internal/model"
	"github.com/Veraticus/jotbot/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args against db.
func execute(t *testing.T, db *testutil.TestDB, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append(args, "--db", db.Path, "--log-level", "error"))

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPurchasesCommands(t *testing.T) {
	db := testutil.SetupTestDBWithOptions(t, testutil.TestDBOptions{
		Purchases: []model.Purchase{
			testutil.Purchase("coffee", "3.20", "food"),
			testutil.Purchase("taxi", "1500", "transport"),
		},
	})

	out, err := execute(t, db, "purchases", "list", "--totals", "--purpose", "", "--limit", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "coffee")
	assert.Contains(t, out, "taxi")
	assert.Contains(t, out, "1,500")

	out, err = execute(t, db, "purchases", "delete", fmt.Sprint(db.Purchases[0].ID))
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted purchase")
	assert.Equal(t, 1, db.MustCountPurchases())

	_, err = execute(t, db, "purchases", "delete", fmt.Sprint(db.Purchases[0].ID))
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestTasksCommands(t *testing.T) {
	db := testutil.SetupTestDBWithOptions(t, testutil.TestDBOptions{
		Tasks: []model.Task{
			testutil.Task("slides", "2026-01-15"),
			testutil.Task("someday", ""),
		},
	})

	out, err := execute(t, db, "tasks", "list", "--due-before", "", "--limit", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "slides")
	assert.Contains(t, out, "2026-01-15")
	assert.Contains(t, out, "someday")

	_, err = execute(t, db, "tasks", "delete", "abc")
	assert.Error(t, err)

	_, err = execute(t, db, "tasks", "done", fmt.Sprint(db.Tasks[1].ID))
	require.NoError(t, err)
	assert.Equal(t, 1, db.MustCountTasks())
}

func TestStatusCommand(t *testing.T) {
	db := testutil.SetupTestDB(t)

	out, err := execute(t, db, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "type")
	assert.Contains(t, out, "purpose")
	assert.Contains(t, out, "reminder")
	assert.Contains(t, out, "untrained")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, testutil.SetupTestDB(t), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "jotbot dev")
}
