package kv

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strconv"
	"time"

	"github.com/ValentinKolb/keyspace/lib/keyspace"
	"github.com/ValentinKolb/keyspace/rpc/client"
	"github.com/spf13/cobra"
)

var (
	// --------------------------------------------------------------------------
	// Generic commands
	// --------------------------------------------------------------------------

	delCmd = &cobra.Command{
		Use:   "del [key]",
		Short: "Deletes a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := genericKey(args[0])
			if err != nil {
				return err
			}
			removed, err := client.Query[int64](executor, key.Del())
			if err != nil {
				return err
			}
			printInt(removed)
			return nil
		},
	}
	ttlCmd = &cobra.Command{
		Use:   "ttl [key]",
		Short: "Returns the remaining time to live of a key in seconds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := genericKey(args[0])
			if err != nil {
				return err
			}
			return printTTL(key.TTL())
		},
	}
	pttlCmd = &cobra.Command{
		Use:   "pttl [key]",
		Short: "Returns the remaining time to live of a key in milliseconds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := genericKey(args[0])
			if err != nil {
				return err
			}
			return printTTL(key.PTTL())
		},
	}
	expireCmd = &cobra.Command{
		Use:   "expire [key] [seconds]",
		Short: "Sets the time to live of a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := genericKey(args[0])
			if err != nil {
				return err
			}
			secs, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("seconds must be a number: %w", err)
			}
			ok, err := client.Query[bool](executor, key.Expire(secs))
			if err != nil {
				return err
			}
			if ok {
				printInt(1)
			} else {
				printInt(0)
			}
			return nil
		},
	}

	// --------------------------------------------------------------------------
	// String commands
	// --------------------------------------------------------------------------

	getCmd = &cobra.Command{
		Use:   "get [key]",
		Short: "Reads the value of a string key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := client.Fetch(executor, keyspace.NewStringKey(args[0]).Load())
			if errors.Is(err, client.ErrNil) {
				fmt.Println("(nil)")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Printf("%q\n", value)
			return nil
		},
	}
	setCmd = &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Sets the value of a string key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Exec(executor, keyspace.NewStringKey(args[0]).Set(args[1])); err != nil {
				return err
			}
			fmt.Println("OK")
			return nil
		},
	}
	incrCmd = &cobra.Command{
		Use:   "incr [key]",
		Short: "Increments an integer key by one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := client.Query[int64](executor, keyspace.NewIntKey(args[0]).Incr())
			if err != nil {
				return err
			}
			printInt(value)
			return nil
		},
	}
	incrByCmd = &cobra.Command{
		Use:   "incrby [key] [amount]",
		Short: "Increments an integer key by amount",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("amount must be a number: %w", err)
			}
			value, err := client.Query[int64](executor, keyspace.NewIntKey(args[0]).IncrBy(amount))
			if err != nil {
				return err
			}
			printInt(value)
			return nil
		},
	}
	mgetCmd = &cobra.Command{
		Use:   "mget [key...]",
		Short: "Reads the values of multiple string keys",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := make([]keyspace.StringKey, len(args))
			for i, name := range args {
				keys[i] = keyspace.NewStringKey(name)
			}
			values, err := client.Query[[]*string](executor, keyspace.MGet(slices.Values(keys)))
			if err != nil {
				return err
			}
			for i, value := range values {
				if value == nil {
					fmt.Printf("%d) (nil)\n", i+1)
				} else {
					fmt.Printf("%d) %q\n", i+1, *value)
				}
			}
			return nil
		},
	}

	// --------------------------------------------------------------------------
	// Set commands
	// --------------------------------------------------------------------------

	saddCmd = &cobra.Command{
		Use:   "sadd [key] [member...]",
		Short: "Adds members to a set",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			set := keyspace.NewSetKey(args[0])
			return sumCounts(args[1:], set.SAdd)
		},
	}
	sremCmd = &cobra.Command{
		Use:   "srem [key] [member...]",
		Short: "Removes members from a set",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			set := keyspace.NewSetKey(args[0])
			return sumCounts(args[1:], set.SRem)
		},
	}
	smembersCmd = &cobra.Command{
		Use:   "smembers [key]",
		Short: "Lists the members of a set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printMembers(keyspace.NewSetKey(args[0]).SMembers())
		},
	}
	sunionCmd = &cobra.Command{
		Use:   "sunion [key...]",
		Short: "Lists the union of sets",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printMembers(keyspace.SUnion(setKeys(args)))
		},
	}
	sinterCmd = &cobra.Command{
		Use:   "sinter [key...]",
		Short: "Lists the intersection of sets",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printMembers(keyspace.SInter(setKeys(args)))
		},
	}
)

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func printInt(i int64) {
	fmt.Printf("(integer) %d\n", i)
}

// printTTL prints the reply of TTL or PTTL like redis-cli does
func printTTL(cmd keyspace.Cmd) error {
	ttl, err := client.Query[time.Duration](executor, cmd)
	switch {
	case errors.Is(err, client.ErrNil):
		printInt(-2)
	case errors.Is(err, client.ErrNoExpiry):
		printInt(-1)
	case err != nil:
		return err
	case cmd.Name() == keyspace.CmdTTL:
		printInt(int64(ttl / time.Second))
	default:
		printInt(ttl.Milliseconds())
	}
	return nil
}

func printMembers(cmd keyspace.Cmd) error {
	members, err := client.Query[[]string](executor, cmd)
	if err != nil {
		return err
	}
	if len(members) == 0 {
		fmt.Println("(empty array)")
	}
	for i, member := range members {
		fmt.Printf("%d) %q\n", i+1, member)
	}
	return nil
}

// sumCounts runs one command per member and prints the total of the integer replies
func sumCounts(members []string, build func(member any) keyspace.Cmd) error {
	var total int64
	for _, member := range members {
		n, err := client.Query[int64](executor, build(member))
		if err != nil {
			return err
		}
		total += n
	}
	printInt(total)
	return nil
}

func setKeys(names []string) iter.Seq[keyspace.SetKey] {
	return func(yield func(keyspace.SetKey) bool) {
		for _, name := range names {
			if !yield(keyspace.NewSetKey(name)) {
				return
			}
		}
	}
}
