// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package commands_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/cmd/folioctl/commands"
)

func TestRootCommand_Tree(t *testing.T) {
	root := commands.NewRootCommand()

	for _, path := range [][]string{
		{"migrate", "up"},
		{"migrate", "down"},
		{"migrate", "version"},
		{"user", "create"},
		{"sessions", "purge"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
}

func TestRootCommand_RequiresDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	root := commands.NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"migrate", "version", "--db", ""})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}
