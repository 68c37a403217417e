package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// User management flags
var userAddAdmin bool

func init() {
	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userRemoveCmd)
	rootCmd.AddCommand(userCmd)
}

// userCmd groups the user management subcommands
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Add a user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Adding user %s (admin=%v)\n", args[0], userAddAdmin)
	},
}

func init() {
	userAddCmd.Flags().BoolVar(&userAddAdmin, "admin", false, "Make user an admin")
}

var userRemoveCmd = &cobra.Command{
	Use:   "remove <username>",
	Short: "Remove a user",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Removing user %s\n", args[0])
	},
}
