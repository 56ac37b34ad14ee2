package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/renatotuller/rt-sql-studio/pkg/joinpath"
	"github.com/renatotuller/rt-sql-studio/pkg/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathCommand_JSONOutput(t *testing.T) {
	graphPath := writeTestGraph(t)

	cmd := NewPathCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"shop.items", "shop.customers", "--graph", graphPath, "--output", "json"})

	require.NoError(t, cmd.Execute())

	var options []joinpath.JoinOption
	require.NoError(t, json.Unmarshal(buf.Bytes(), &options))
	require.NotEmpty(t, options)

	// The only route runs items -> orders -> customers.
	assert.Equal(t, 2, options[0].Path.Length)
	assert.False(t, options[0].Direct)
	assert.Equal(t, []string{"shop.orders"}, options[0].Path.IntermediateTables)
}

func TestPathCommand_DirectRoute(t *testing.T) {
	graphPath := writeTestGraph(t)

	cmd := NewPathCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"shop.orders", "shop.customers", "--graph", graphPath, "--output", "json", "--best"})

	require.NoError(t, cmd.Execute())

	var options []joinpath.JoinOption
	require.NoError(t, json.Unmarshal(buf.Bytes(), &options))
	require.Len(t, options, 1)
	assert.True(t, options[0].Direct)
	assert.Contains(t, options[0].Description, "Direct relationship")
}

func TestPathCommand_JoinsOutput(t *testing.T) {
	graphPath := writeTestGraph(t)

	cmd := NewPathCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"shop.items", "shop.customers", "--graph", graphPath, "--joins"})

	require.NoError(t, cmd.Execute())

	var joins []query.Join
	require.NoError(t, json.Unmarshal(buf.Bytes(), &joins))
	require.Len(t, joins, 2)

	assert.Equal(t, "shop.items", joins[0].SourceTableID)
	assert.Equal(t, "shop.orders", joins[0].TargetTableID)
	assert.Equal(t, "shop.customers", joins[1].TargetTableID)
	// The chain must stay contiguous across hops.
	assert.Equal(t, joins[0].TargetAlias, joins[1].SourceAlias)
	assert.Equal(t, query.JoinInner, joins[0].Type)
	assert.NotEmpty(t, joins[0].ID)
}

func TestPathCommand_NoRoute(t *testing.T) {
	graphPath := writeTestGraph(t)

	cmd := NewPathCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	// max-depth 1 rules out the two-hop route.
	cmd.SetArgs([]string{"shop.items", "shop.customers", "--graph", graphPath, "--max-depth", "1"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no join path")
}

func TestPathCommand_UnknownTable(t *testing.T) {
	graphPath := writeTestGraph(t)

	cmd := NewPathCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"shop.orders", "shop.ghost", "--graph", graphPath})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown table")
}
