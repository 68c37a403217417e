package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// Showcase command flags
var (
	greetFormal bool

	configHost   string
	configPort   int
	configDebug  bool
	configAPIKey string

	paintColor string
	paintFiles []string

	subscribeWeekly bool

	failReason string

	removeRecursive bool

	waitSeconds int

	ratioValue float64
)

func init() {
	rootCmd.AddCommand(greetCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(paintCmd)
	rootCmd.AddCommand(subscribeCmd)
	rootCmd.AddCommand(failCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(waitCmd)
	rootCmd.AddCommand(ratioCmd)
}

// greetCmd demonstrates a positional argument plus a boolean flag
var greetCmd = &cobra.Command{
	Use:   "greet <name>",
	Short: "Greet somebody by name",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if greetFormal {
			fmt.Printf("Good day, %s.\n", args[0])
		} else {
			fmt.Printf("Hey %s!\n", args[0])
		}
	},
}

func init() {
	greetCmd.Flags().BoolVar(&greetFormal, "formal", false, "Use a formal greeting")
}

// configCmd demonstrates defaults, types, and an env-var backed flag
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration values",
	Long: `Show configuration values and how they were resolved.

Demonstrates default values, typed options, and environment variable
fallback (CLIFORM_DEBUG for --debug).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if configPort < 1 || configPort > 65535 {
			return fmt.Errorf("port %d out of range (1-65535)", configPort)
		}
		debug := configDebug
		if !cmd.Flags().Changed("debug") {
			if env := os.Getenv("CLIFORM_DEBUG"); env == "1" || env == "true" {
				debug = true
			}
		}
		fmt.Printf("Host: %s\n", configHost)
		fmt.Printf("Port: %d\n", configPort)
		fmt.Printf("Debug: %v\n", debug)
		fmt.Printf("API key length: %d\n", len(configAPIKey))
		return nil
	},
}

func init() {
	configCmd.Flags().StringVar(&configHost, "host", "localhost", "Server hostname")
	configCmd.Flags().IntVar(&configPort, "port", 8080, "Server port")
	configCmd.Flags().BoolVar(&configDebug, "debug", false, "Enable debug mode (env: CLIFORM_DEBUG)")
	configCmd.Flags().StringVar(&configAPIKey, "api-key", "", "API key")
}

// paintCmd demonstrates an enumerated option and a repeatable one
var paintCmd = &cobra.Command{
	Use:   "paint",
	Short: "Paint files in a chosen color",
	RunE: func(cmd *cobra.Command, args []string) error {
		switch paintColor {
		case "red", "green", "blue":
		default:
			return fmt.Errorf("invalid color %q (choose red, green, or blue)", paintColor)
		}
		fmt.Printf("Color: %s\n", paintColor)
		if len(paintFiles) == 0 {
			fmt.Println("Files: <none>")
		} else {
			fmt.Printf("Files: %s\n", strings.Join(paintFiles, ", "))
		}
		return nil
	},
}

func init() {
	paintCmd.Flags().StringVar(&paintColor, "color", "red", "Choose a paint color (red, green, blue)")
	paintCmd.Flags().StringSliceVar(&paintFiles, "files", nil, "Files to paint (repeatable)")
}

var emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// subscribeCmd demonstrates argument validation
var subscribeCmd = &cobra.Command{
	Use:   "subscribe <email>",
	Short: "Subscribe an email address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !emailPattern.MatchString(args[0]) {
			return fmt.Errorf("not a valid email address: %s", args[0])
		}
		fmt.Printf("Subscribing %s (weekly=%v)\n", args[0], subscribeWeekly)
		return nil
	},
}

func init() {
	subscribeCmd.Flags().BoolVar(&subscribeWeekly, "weekly", true, "Receive weekly newsletter")
}

// failCmd demonstrates nonzero exit codes flowing back as data
var failCmd = &cobra.Command{
	Use:   "fail",
	Short: "Fail on purpose",
	RunE: func(cmd *cobra.Command, args []string) error {
		if failReason == "" {
			return errors.New("no reason provided")
		}
		fmt.Printf("Failing because: %s\n", failReason)
		return nil
	},
}

func init() {
	failCmd.Flags().StringVar(&failReason, "reason", "", "Reason to fail")
}

// removeCmd demonstrates a confirmation prompt and a short flag alias
var removeCmd = &cobra.Command{
	Use:   "remove <path>",
	Short: "Simulate removing a path",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(args[0]); err != nil {
			return fmt.Errorf("path does not exist: %s", args[0])
		}
		fmt.Printf("Are you sure you want to remove %s? [y/N] ", args[0])
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			fmt.Println("Aborted.")
			return errors.New("aborted by user")
		}
		fmt.Printf("Removed %s", args[0])
		if removeRecursive {
			fmt.Print(" (recursively)")
		}
		fmt.Println()
		return nil
	},
}

func init() {
	removeCmd.Flags().BoolVarP(&removeRecursive, "recursive", "r", false, "Remove recursively")
}

// waitCmd demonstrates a long-running command, useful for testing stop
var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for a number of seconds",
	RunE: func(cmd *cobra.Command, args []string) error {
		if waitSeconds < 0 || waitSeconds > 60 {
			return fmt.Errorf("seconds %d out of range (0-60)", waitSeconds)
		}
		fmt.Printf("Waiting %d second(s)...\n", waitSeconds)
		for i := 0; i < waitSeconds; i++ {
			time.Sleep(time.Second)
			fmt.Printf("tick %d\n", i+1)
		}
		fmt.Println("Done waiting")
		return nil
	},
}

func init() {
	waitCmd.Flags().IntVar(&waitSeconds, "seconds", 1, "Seconds to wait")
}

// ratioCmd demonstrates a required, range-constrained float option
var ratioCmd = &cobra.Command{
	Use:   "ratio",
	Short: "Accept a ratio between 0 and 1",
	RunE: func(cmd *cobra.Command, args []string) error {
		if ratioValue < 0.0 || ratioValue > 1.0 {
			return fmt.Errorf("ratio %g out of range (0.0-1.0)", ratioValue)
		}
		fmt.Printf("Ratio: %g\n", ratioValue)
		return nil
	},
}

func init() {
	ratioCmd.Flags().Float64Var(&ratioValue, "value", 0, "A ratio between 0.0 and 1.0")
	_ = ratioCmd.MarkFlagRequired("value")
}
