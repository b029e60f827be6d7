package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *appContainer) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long:  `Manage configuration settings for providers. You can set, get, list, and delete configuration values.`,
	}

	configSetCmd := &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Set a configuration key-value pair",
		Long:  `Sets a configuration value. For example: 'stratus config set gcs.project my-project-123'`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.ToLower(args[0])
			value := args[1]

			if err := app.ConfigManager.SetValue(key, value); err != nil {
				return fmt.Errorf("error setting configuration: %w", err)
			}
			fmt.Printf("Configuration set: %s = %s\n", key, value)
			return nil
		},
	}

	configGetCmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.ToLower(args[0])

			value, exists, err := app.ConfigManager.GetValue(key)
			if err != nil {
				return fmt.Errorf("error reading configuration: %w", err)
			}
			if !exists || value == "" {
				fmt.Printf("Configuration key '%s' is not set.\n", key)
				return nil
			}
			fmt.Printf("%s = %s\n", key, value)
			return nil
		},
	}

	configListCmd := &cobra.Command{
		Use:   "list",
		Short: "List all configuration values",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.ConfigManager.LoadConfig()
			if err != nil {
				return fmt.Errorf("error reading configuration: %w", err)
			}

			if cfg.GCS == nil {
				fmt.Println("No configuration set.")
				return nil
			}

			if cfg.GCS.Project != "" {
				fmt.Printf("gcs.project = %s\n", cfg.GCS.Project)
			}
			if cfg.GCS.CredentialsFile != "" {
				fmt.Printf("gcs.credentials_file = %s\n", cfg.GCS.CredentialsFile)
			}
			if cfg.GCS.Endpoint != "" {
				fmt.Printf("gcs.endpoint = %s\n", cfg.GCS.Endpoint)
			}
			return nil
		},
	}

	configUnsetCmd := &cobra.Command{
		Use:   "unset [key]",
		Short: "Remove a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := strings.ToLower(args[0])

			removed, err := app.ConfigManager.DeleteValue(key)
			if err != nil {
				return fmt.Errorf("error removing configuration: %w", err)
			}
			if removed {
				fmt.Printf("Configuration key '%s' removed.\n", key)
			} else {
				fmt.Printf("Configuration key '%s' was not set.\n", key)
			}
			return nil
		},
	}

	configCmd.AddCommand(configSetCmd, configGetCmd, configListCmd, configUnsetCmd)
	return configCmd
}
