package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/keyspace/cmd/kv"
	"github.com/ValentinKolb/keyspace/cmd/serve"
	"github.com/ValentinKolb/keyspace/cmd/util"
	"github.com/spf13/cobra"
)

const (
	Version = "0.1.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "keyspace",
		Short: "typed key-value commands over RESP",
		Long: fmt.Sprintf(`keyspace (v%s)

A typed key-space command builder for redis compatible stores written in Go,
shipped with an in-memory RESP server for local use and testing.`, Version),
		SilenceUsage: true,
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of keyspace",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("keyspace v%s\n", Version)
		},
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(kv.KeyValueCommands)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "transport"
	RootCmd.PersistentFlags().String(key, "tcp", util.WrapString("transport to use (tcp, unix)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
