package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/miseqsprime/neolith/interactive"
	"github.com/miseqsprime/neolith/users"
)

func TestRootCmdRegistersServeSubcommand(t *testing.T) {
	root := newRootCmd()
	cmd, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)
	require.Equal(t, "serve", cmd.Name())
}

func TestServeCmdFlags(t *testing.T) {
	cmd := newServeCmd()
	for _, name := range []string{"config", "listen", "listen-ws", "log-level"} {
		require.NotNil(t, cmd.Flags().Lookup(name), "missing flag %s", name)
	}
}

func TestGrantTurnsSetsFlagOnlyOnLiveUsers(t *testing.T) {
	table := users.NewTable(2)
	ob := newGuestObject()
	ip := interactive.New(ob)
	table.Put(0, ip)

	grantTurns(table)

	require.True(t, ip.HasFlag(interactive.HasCmdTurn))
	require.Nil(t, table.At(1))
}
