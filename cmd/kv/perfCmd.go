package kv

import (
	"encoding/csv"
	"fmt"
	"log"
	"math"
	"os"
	"slices"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/ValentinKolb/keyspace/cmd/util"
	"github.com/ValentinKolb/keyspace/lib/keyspace"
	"github.com/ValentinKolb/keyspace/rpc/client"
	"github.com/ValentinKolb/keyspace/rpc/common"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	perfTestCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for keyspace servers",
		Long:    "",
		RunE:    run,
		PreRunE: processPerfConfig,
	}
	perfKeyPrefix        = "__test"
	perfLargeValueSizeKB = 100
	perfNumThreads       = 10
	perfKeySpread        = 100
	perfSkip             = make([]string, 0)
)

// perfTest describes one benchmark.
// setup is run once per key before the benchmark, op is run in parallel with rotating keys
type perfTest struct {
	name  string
	setup func(key string) keyspace.Cmd
	op    func(key string) keyspace.Cmd
}

func init() {
	// add flags
	key := "skip"
	perfTestCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. set,get)"))
	key = "threads"
	perfTestCmd.Flags().Int(key, 10, util.WrapString("Number of threads to use for the benchmark"))
	key = "large-value-size"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How large the value for the set-large test should be (in KB)"))
	key = "keys"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How many different keys to use for the tests"))
	key = "csv"
	perfTestCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	perfLargeValueSizeKB = viper.GetInt("large-value-size")
	perfKeySpread = max(viper.GetInt("keys"), 1)
	perfNumThreads = max(viper.GetInt("threads"), 1)
	perfSkip = strings.Split(viper.GetString("skip"), ",")

	return nil
}

func run(_ *cobra.Command, _ []string) error {

	fmt.Println("Performance testing tool for keyspace servers")

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println(util.GetClientConfig().String())
	fmt.Printf("Threads: %d\n", perfNumThreads)
	fmt.Println()

	fmt.Println("starting tests...")

	largeValue := make([]byte, perfLargeValueSizeKB*1024)

	tests := []perfTest{
		{
			name: "set",
			op:   func(k string) keyspace.Cmd { return keyspace.NewStringKey(k).Set("test") },
		},
		{
			name: "set-large",
			op:   func(k string) keyspace.Cmd { return keyspace.NewStringKey(k).Set(largeValue) },
		},
		{
			name:  "get",
			setup: func(k string) keyspace.Cmd { return keyspace.NewStringKey(k).Set("test") },
			op:    func(k string) keyspace.Cmd { return keyspace.NewStringKey(k).Get() },
		},
		{
			name: "incr",
			op:   func(k string) keyspace.Cmd { return keyspace.NewIntKey(k).Incr() },
		},
		{
			name:  "ttl",
			setup: func(k string) keyspace.Cmd { return keyspace.NewStringKey(k).Set("test") },
			op:    func(k string) keyspace.Cmd { return keyspace.NewStringKey(k).TTL() },
		},
		{
			name: "sadd",
			op:   func(k string) keyspace.Cmd { return keyspace.NewSetKey(k).SAdd(time.Now().UnixNano()) },
		},
		{
			name:  "smembers",
			setup: func(k string) keyspace.Cmd { return keyspace.NewSetKey(k).SAdd("member") },
			op:    func(k string) keyspace.Cmd { return keyspace.NewSetKey(k).SMembers() },
		},
		{
			name:  "mget",
			setup: func(k string) keyspace.Cmd { return keyspace.NewStringKey(k).Set("test") },
			op: func(k string) keyspace.Cmd {
				return keyspace.MGet(slices.Values([]keyspace.StringKey{keyspace.NewStringKey(k), keyspace.NewStringKey(k + "-missing")}))
			},
		},
	}

	// Create results map
	results := make(map[string]testing.BenchmarkResult)

	for _, test := range tests {
		result := benchmark(test)
		results[test.name] = result
		printResult(test.name, result)
	}

	printStats(executor.Stats())

	// Write results to csv is specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Printf("\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, results, util.GetClientConfig()); err != nil {
			return fmt.Errorf("failed to export results to CSV: %v", err)
		}
		fmt.Println("Export complete")
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// benchmark runs one perf test. Skipped tests return an empty result
func benchmark(test perfTest) testing.BenchmarkResult {
	return testing.Benchmark(func(b *testing.B) {
		if shouldSkip(test.name) {
			return
		}

		// prepare keys
		getKey, iter := getKeys(test.name)

		// set keys
		if test.setup != nil {
			iter(func(k string) {
				if err := client.Exec(executor, test.setup(k)); err != nil {
					log.Printf("(%s) - error preparing key: %v\n", test.name, err)
				}
			})
		}

		// cleanup
		b.Cleanup(func() {
			iter(func(k string) {
				if err := client.Exec(executor, keyspace.NewStringKey(k).Del()); err != nil {
					log.Printf("(%s) - error deleting key: %v\n", test.name, err)
				}
			})
		})

		b.SetParallelism(perfNumThreads)

		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				if err := client.Exec(executor, test.op(getKey(counter))); err != nil {
					log.Printf("(%s) - error performing operation: %v\n", test.name, err)
				}
				counter++
			}
		})
	})
}

func shouldSkip(test string) bool {
	// Check if the test is in the skip list
	return slices.Contains(perfSkip, test)
}

// creates an array of test keys and functions to work with them
func getKeys(prefix string) (func(int) string, func(func(string))) {
	keys := make([]string, perfKeySpread)
	for i := 0; i < perfKeySpread; i++ {
		keys[i] = fmt.Sprintf("%s-%s-%d", perfKeyPrefix, prefix, i)
	}

	// Function to get a key by index (with wraparound)
	getKey := func(i int) string {
		return keys[i%perfKeySpread]
	}

	// Function to iterate over all keys and apply a function to each
	iterateKeys := func(fn func(string)) {
		for _, key := range keys {
			fn(key)
		}
	}

	return getKey, iterateKeys
}

// printResult prints the result of a benchmark test in a formatted way
func printResult(test string, result testing.BenchmarkResult) {
	if result.NsPerOp() == 0 {
		fmt.Printf("%-20sskipped\n", test)
		return
	}

	nsPerOp := math.Max(float64(result.NsPerOp()), 1) // prevent division by zero
	opsPerSec := 1.0 / (nsPerOp / 1e9)

	// Print the formatted result
	fmt.Printf("%-20s%.0fns/op (%s/op)\t%.0f ops/sec\n", test, nsPerOp, time.Duration(nsPerOp), opsPerSec)
}

// printStats prints the client side latency per command
func printStats(stats client.Stats) {
	fmt.Println()
	fmt.Println("Client latency per command:")

	names := make([]string, 0, len(stats.Commands))
	for name := range stats.Commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		s := stats.Commands[name]
		fmt.Printf("%-20s%10d calls\tmean %s\tp99 %s\n", name, s.Count, s.Mean, s.P99)
	}
	fmt.Printf("%-20s%10d\n", "errors", stats.Errors)
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, results map[string]testing.BenchmarkResult, config *common.ClientConfig) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	header := []string{
		"Test", "NsPerOp", "DurationPerOp", "OpsPerSec", "Skipped",
		"Endpoints", "TimeoutSec", "RetryCount", "ConnectionsPerEndpoint",
		"Transport", "Threads", "LargeValueSizeKB", "Keys Count",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	// Write test results
	for test, result := range results {
		var nsPerOp float64
		var opsPerSec float64
		var skipped string

		if result.NsPerOp() == 0 {
			skipped = "true"
		} else {
			skipped = "false"
			nsPerOp = math.Max(float64(result.NsPerOp()), 1)
			opsPerSec = 1.0 / (nsPerOp / 1e9)
		}

		row := []string{
			test,
			fmt.Sprintf("%.0f", nsPerOp),
			time.Duration(nsPerOp).String(),
			fmt.Sprintf("%.0f", opsPerSec),
			skipped,
			strings.Join(config.Transport.Endpoints, ";"),
			strconv.Itoa(config.TimeoutSecond),
			strconv.Itoa(config.Transport.RetryCount),
			strconv.Itoa(config.Transport.ConnectionsPerEndpoint),
			viper.GetString("transport"),
			strconv.Itoa(perfNumThreads),
			strconv.Itoa(perfLargeValueSizeKB),
			strconv.Itoa(perfKeySpread),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %v", test, err)
		}
	}

	return nil
}
