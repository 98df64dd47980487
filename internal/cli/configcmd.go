package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tylerjwoodfin/atlas-man/internal/config"
	"github.com/tylerjwoodfin/atlas-man/internal/format"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the atlasman configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration with secrets redacted",
	RunE:  runConfigShow,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the configuration file in $EDITOR",
	RunE:  runConfigEdit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the configuration file path",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(config.Path())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	red := cfg.Redacted()
	if cfg.CLI.OutputFormat == format.YAML {
		data, err := yaml.Marshal(red)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	}

	data, err := json.MarshalIndent(red, "", "    ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	path := config.Path()
	if !config.Exists() {
		fmt.Printf("No configuration at %s yet; writing defaults first.\n", path)
		if err := config.WriteDefault(); err != nil {
			return err
		}
	}
	return runEditor(path)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.Path()
	if config.Exists() {
		return fmt.Errorf("configuration already exists at %s", path)
	}
	if err := config.WriteDefault(); err != nil {
		return err
	}
	fmt.Printf("Configuration saved to %s.\n", path)
	fmt.Println("Fill in your Trello and Jira credentials with 'atlasman config edit'.")
	return nil
}
