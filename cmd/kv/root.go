package kv

import (
	"fmt"

	"github.com/ValentinKolb/keyspace/cmd/util"
	"github.com/ValentinKolb/keyspace/lib/keyspace"
	"github.com/ValentinKolb/keyspace/rpc/client"
	"github.com/ValentinKolb/keyspace/rpc/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	executor client.IExecutor

	// KeyValueCommands represents the KV command group
	KeyValueCommands = &cobra.Command{
		Use:                "kv",
		Short:              "Perform typed key-value operations",
		PersistentPreRunE:  setupKVClient,
		PersistentPostRunE: closeKVClient,
	}
)

func init() {
	// Add common RPC flags to the KV command
	util.SetupRPCClientFlags(KeyValueCommands)

	KeyValueCommands.PersistentFlags().String("type", "string", util.WrapString("Shape of the key for ttl, pttl, expire and del (string, int, set)"))

	// Add subcommands
	KeyValueCommands.AddCommand(delCmd)
	KeyValueCommands.AddCommand(ttlCmd)
	KeyValueCommands.AddCommand(pttlCmd)
	KeyValueCommands.AddCommand(expireCmd)
	KeyValueCommands.AddCommand(getCmd)
	KeyValueCommands.AddCommand(setCmd)
	KeyValueCommands.AddCommand(incrCmd)
	KeyValueCommands.AddCommand(incrByCmd)
	KeyValueCommands.AddCommand(mgetCmd)
	KeyValueCommands.AddCommand(saddCmd)
	KeyValueCommands.AddCommand(sremCmd)
	KeyValueCommands.AddCommand(smembersCmd)
	KeyValueCommands.AddCommand(sunionCmd)
	KeyValueCommands.AddCommand(sinterCmd)
	KeyValueCommands.AddCommand(perfTestCmd)
}

// setupKVClient initializes the executor
func setupKVClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	if err := common.InitLoggers(viper.GetString("log-level")); err != nil {
		return err
	}

	// Get client configuration and transport
	config := util.GetClientConfig()

	t, err := util.GetTransport()
	if err != nil {
		return err
	}

	// Create the executor
	executor, err = client.NewExecutor(*config, t)
	return err
}

// closeKVClient closes the executor after the command ran
func closeKVClient(_ *cobra.Command, _ []string) error {
	if executor == nil {
		return nil
	}
	return executor.Close()
}

// genericKey returns a key of the shape selected with the --type flag
func genericKey(name string) (keyspace.GenericValue, error) {
	switch viper.GetString("type") {
	case "string":
		return keyspace.NewStringKey(name), nil
	case "int":
		return keyspace.NewIntKey(name), nil
	case "set":
		return keyspace.NewSetKey(name), nil
	default:
		return nil, fmt.Errorf("invalid key type %s (expected one of: string, int, set)", viper.GetString("type"))
	}
}
