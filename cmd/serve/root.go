package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	cmdUtil "github.com/ValentinKolb/keyspace/cmd/util"
	"github.com/ValentinKolb/keyspace/rpc/common"
	"github.com/ValentinKolb/keyspace/rpc/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// shutdownTimeout bounds the graceful shutdown of the metrics endpoint
const shutdownTimeout = 5 * time.Second

var (
	serveCmdConfig = &common.ServerConfig{}
	ServeCmd       = &cobra.Command{
		Use:     "serve",
		Short:   "Start the keyspace server",
		Long:    `Start the in-memory keyspace server with the specified configuration. The configuration can be set via command line flags or environment variables. The format of the environment variables is KEYSPACE_<flag> (e.g. KEYSPACE_GC_INTERVAL=50)`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	// add flags
	key := "endpoint"
	ServeCmd.PersistentFlags().String(key, "0.0.0.0:6379", cmdUtil.WrapString("The address on which the server will listen (e.g. localhost:6379, /tmp/keyspace.sock, ...)"))

	key = "timeout"
	ServeCmd.PersistentFlags().Int64(key, 0, cmdUtil.WrapString("Idle timeout of client connections in seconds (0 disables it)"))

	key = "gc-interval"
	ServeCmd.PersistentFlags().Int64(key, 100, cmdUtil.WrapString("Interval in milliseconds at which expired keys are removed"))

	key = "metrics-endpoint"
	ServeCmd.PersistentFlags().String(key, "", cmdUtil.WrapString("Optional address to serve prometheus metrics on (e.g. :9100), metrics are available at /metrics"))

	key = "log-level"
	ServeCmd.PersistentFlags().String(key, "info", cmdUtil.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))

	cmdUtil.SetupSocketFlags(ServeCmd)
}

// processConfig reads the configuration from the command line flags and environment variables and converts them to the server configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	// bind the flags to viper
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// read the configuration from the command line flags and environment variables
	serveCmdConfig.TimeoutSecond = viper.GetInt64("timeout")
	serveCmdConfig.GCIntervalMs = viper.GetInt64("gc-interval")
	serveCmdConfig.MetricsEndpoint = viper.GetString("metrics-endpoint")
	serveCmdConfig.LogLevel = viper.GetString("log-level")

	socketConf, tcpConf := cmdUtil.GetSocketConf()
	serveCmdConfig.Transport = common.ServerTransportConfig{
		Endpoint:   viper.GetString("endpoint"),
		SocketConf: socketConf,
		TCPConf:    tcpConf,
	}

	if serveCmdConfig.GCIntervalMs <= 0 {
		return fmt.Errorf("gc-interval must be positive, got %d", serveCmdConfig.GCIntervalMs)
	}

	return common.InitLoggers(serveCmdConfig.LogLevel)
}

// run starts the keyspace server and stops it on SIGINT or SIGTERM
func run(_ *cobra.Command, _ []string) error {
	t, err := cmdUtil.GetServerTransport()
	if err != nil {
		return err
	}

	serv := server.NewRPCServer(*serveCmdConfig, t)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- serv.Serve() }()

	select {
	case err := <-errCh:
		// the listener failed, release the store
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = serv.Shutdown(shutdownCtx)
		return err
	case <-ctx.Done():
		server.Logger.Infof("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := serv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
