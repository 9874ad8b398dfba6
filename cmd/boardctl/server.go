package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kimyoungq/webboard/pkg/config"
	"github.com/kimyoungq/webboard/pkg/db"
	"github.com/kimyoungq/webboard/pkg/server"
	"github.com/kimyoungq/webboard/pkg/server/endpoints"
)

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8080"
}

func defaultPortInt() int {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			return p
		}
	}
	return 8080
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the bulletin board server",
	Long: `Run the bulletin board server.

To run the server requires the environment variables BOARD_SECRET_KEY and DATABASE_URL.

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Validate required environment variables first (fail fast)
		secretKeyB64, ok := os.LookupEnv("BOARD_SECRET_KEY")
		if !ok {
			fmt.Fprintln(os.Stderr, "BOARD_SECRET_KEY environment variable is required")
			os.Exit(1)
		}

		if os.Getenv("DATABASE_URL") == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		secretKey, err := base64.StdEncoding.DecodeString(secretKeyB64)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Bad BOARD_SECRET_KEY:", err)
			os.Exit(1)
		}

		// Run migrations unless --no-migrate is set
		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			log.Println("Running database migrations...")
			if err := runMigrations(); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		cfg := config.Get()
		if err := cfg.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, "Invalid configuration:", err)
			os.Exit(1)
		}

		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		s, err := server.NewServer(database, cfg, secretKey, host, port)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to start server:", err)
			os.Exit(1)
		}

		endpoints.RegisterAll(s)

		// Reload templates on change when serving from disk
		if cfg.TemplateDir != "" {
			go func() {
				if err := s.Views.Watch(context.Background()); err != nil {
					log.Println("Template watch stopped:", err)
				}
			}()
		}

		log.Printf("Running server at http://%s:%s...\n", host, port)
		log.Fatal(s.Start())
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}
