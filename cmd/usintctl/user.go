package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cxcds/usint-in-go/pkg/config"
	"github.com/cxcds/usint-in-go/pkg/db"
	"github.com/cxcds/usint-in-go/pkg/model"
	gormstore "github.com/cxcds/usint-in-go/pkg/server/store/gorm"
)

// userCmd represents the user command
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage staff accounts",
	Long:  `Manage the staff accounts the front server identities are matched against.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'user' requires a subcommand (create, list)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

// userCreateCmd represents the user create command
var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a staff account",
	Long: `Create a staff account.

Accounts are matched against the REMOTE_USER identity supplied by the front
server, so the username must agree with the front server's notion of it.

Example:
  usintctl user create --username jdoe --email jdoe@example.edu --full-name "Jan Doe"`,
	Run: func(cmd *cobra.Command, args []string) {
		username, _ := cmd.Flags().GetString("username")
		if username == "" {
			fmt.Fprintln(os.Stderr, "--username is required")
			os.Exit(1)
		}
		email, _ := cmd.Flags().GetString("email")
		fullName, _ := cmd.Flags().GetString("full-name")
		groups, _ := cmd.Flags().GetStringSlice("groups")

		users, err := openUsersStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		user := &model.User{
			Username: username,
			IsActive: true,
			Email:    email,
			FullName: fullName,
			Groups:   strings.Join(groups, ","),
		}
		if err := users.Create(user); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create user: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Created user '%s' (id %d)\n", user.Username, user.ID)
	},
}

// userListCmd represents the user list command
var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List staff accounts",
	Long:  `List all staff accounts, active accounts first.`,
	Run: func(cmd *cobra.Command, args []string) {
		users, err := openUsersStore()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		all, err := users.List()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list users: %v\n", err)
			os.Exit(1)
		}

		for _, u := range all {
			state := "active"
			if !u.IsActive {
				state = "inactive"
			}
			fmt.Printf("%d\t%s\t%s\t%s\t%s\n", u.ID, u.Username, state, u.Email, u.FullName)
		}
	},
}

func openUsersStore() (*gormstore.UsersStore, error) {
	database, err := db.Connect(db.Config{URL: config.Get().DatabaseURL})
	if err != nil {
		return nil, err
	}
	return gormstore.NewUsersStore(database), nil
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userListCmd)

	userCreateCmd.Flags().StringP("username", "u", "", "account username (required)")
	userCreateCmd.Flags().StringP("email", "e", "", "account email address")
	userCreateCmd.Flags().String("full-name", "", "account display name")
	userCreateCmd.Flags().StringSlice("groups", nil, "group memberships (comma separated)")
}
