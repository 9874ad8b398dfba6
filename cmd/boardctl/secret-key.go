package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// secretKeyCmd represents the secret-key command
var secretKeyCmd = &cobra.Command{
	Use:   "secret-key",
	Short: "Manage the anti-forgery signing key",
	Long:  `Manage the key used to sign anti-forgery tokens.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'secret-key' requires a subcommand (generate)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

var secretKeyGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a signing key",
	Long: `Generate a random 256-bit key for signing anti-forgery tokens.

The key is printed to STDOUT, base64-encoded. Export it as
BOARD_SECRET_KEY before starting the server.

Example:
  boardctl secret-key generate > secret_key
  export BOARD_SECRET_KEY=$(cat secret_key)`,
	Run: func(cmd *cobra.Command, args []string) {
		key := make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate key: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(base64.StdEncoding.EncodeToString(key))
	},
}

func init() {
	rootCmd.AddCommand(secretKeyCmd)
	secretKeyCmd.AddCommand(secretKeyGenerateCmd)
}
