package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mwheeler/cliform/internal/config"
)

func init() {
	prefsCmd.AddCommand(prefsShowCmd)
	prefsCmd.AddCommand(prefsInitCmd)
	rootCmd.AddCommand(prefsCmd)
}

// prefsCmd groups the preference file subcommands
var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Inspect and manage preferences",
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		prefs, err := config.Global()
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(prefs)
		if err != nil {
			return err
		}
		fmt.Printf("# %s\n%s", path, data)
		return nil
	},
}

var prefsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a preferences file with default values",
	Long: `Write a preferences file populated with defaults.

An existing file is left untouched unless --force is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")
		if !force {
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
		}
		if err := config.Save(path, config.NewPreferences()); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

func init() {
	prefsInitCmd.Flags().Bool("force", false, "Overwrite an existing preferences file")
}
