package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/kimyoungq/webboard/pkg/db"
	"github.com/kimyoungq/webboard/pkg/model"
	gormstore "github.com/kimyoungq/webboard/pkg/server/store/gorm"
)

// accountCreateCmd represents the account create command
var accountCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a board account",
	Long: `Create a board account.

Accounts created here can log in immediately. Use --role admin to create
an administrator, who can edit and delete any post.

Example:
  boardctl account create alice --password secret
  boardctl account create admin --password changeme --role admin`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		password, _ := cmd.Flags().GetString("password")
		roleName, _ := cmd.Flags().GetString("role")

		if err := createAccount(name, password, roleName); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create account: %v\n", err)
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "Created account '%s' with role '%s'\n", name, roleName)
	},
}

func init() {
	accountCmd.AddCommand(accountCreateCmd)
	accountCreateCmd.Flags().String("password", "", "Login password (required)")
	accountCreateCmd.Flags().String("role", "user", "Account role (user or admin)")
	_ = accountCreateCmd.MarkFlagRequired("password")
}

func createAccount(name, password, roleName string) error {
	if name == "" || password == "" {
		return fmt.Errorf("name and password are required")
	}

	role, err := model.RoleString(roleName)
	if err != nil {
		return fmt.Errorf("invalid role %q: must be user or admin", roleName)
	}

	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	accounts := gormstore.NewAccountsStore(database)
	if _, err := accounts.CreateAccount(name, string(hash), role); err != nil {
		return err
	}
	return nil
}
