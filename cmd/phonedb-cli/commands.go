package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"phonedb/internal/transport"

	"github.com/spf13/cobra"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var addCmd = &cobra.Command{
	Use:   "add <surname> <phone>",
	Short: "Store a phone number under a surname",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return send(cmd, "a "+args[0]+" "+args[1]+"\n", false)
	},
}

var getCmd = &cobra.Command{
	Use:   "get <surname>",
	Short: "Print the phone number stored for a surname",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return send(cmd, "g "+args[0]+"\n", true)
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <surname>",
	Short: "Delete the record for a surname",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return send(cmd, "r "+args[0]+"\n", false)
	},
}

var rawCmd = &cobra.Command{
	Use:   "raw <text>...",
	Short: "Write raw command text and print whatever comes back",
	Long: `Write the arguments, joined by spaces, as one device write. In stack mode
this pushes a message; the response, if any, is drained and printed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return send(cmd, strings.Join(args, " ")+"\n", true)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the device state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, c *transport.DeviceClient) error {
			st, err := c.Stats(ctx)
			if err != nil {
				return err
			}

			keys := make([]string, 0, len(st))
			for k := range st {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%-18s %v\n", k, st[k])
			}
			return nil
		})
	},
}

func send(cmd *cobra.Command, text string, drain bool) error {
	return withClient(cmd, func(ctx context.Context, c *transport.DeviceClient) error {
		n, err := c.Write(ctx, []byte(text))
		if err != nil {
			return writeError(n, len(text), err)
		}
		if !drain {
			return nil
		}

		out, err := c.Drain(ctx)
		if err != nil {
			return err
		}
		if len(out) > 0 {
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
		}
		return nil
	})
}

// writeError reports the accepted byte count only for a truncated write.
func writeError(accepted, size int, err error) error {
	if status.Code(err) == codes.ResourceExhausted {
		return fmt.Errorf("write accepted %d of %d bytes: %w", accepted, size, err)
	}
	return fmt.Errorf("write: %w", err)
}
