package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"phonedb/internal/transport"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

var (
	addr    string
	timeout time.Duration
)

// rootCmd talks to a running device over gRPC
var rootCmd = &cobra.Command{
	Use:   "phonedb-cli",
	Short: "Client for a phonedb device",
	Long: `Send commands to a phonedb device and print its responses.

Available subcommands:
  add    - Store a phone number under a surname
  get    - Print the phone number stored for a surname
  remove - Delete the record for a surname
  raw    - Write raw command text and print whatever comes back
  stats  - Show the device state`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&addr, "addr", "a", "127.0.0.1:7070", "Device address")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Second, "Request timeout")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(rawCmd)
	rootCmd.AddCommand(statsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// withClient dials the device and runs fn with a request-scoped context.
func withClient(cmd *cobra.Command, fn func(ctx context.Context, c *transport.DeviceClient) error) error {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	return fn(ctx, transport.NewDeviceClient(conn))
}
