package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/themesync/internal/infrastructure/config"
)

var schemaWrite bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the configuration",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config and database paths",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app := GetApp()
		if app == nil {
			return fmt.Errorf("app not initialized")
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "config:   %s\n", app.ConfigManager.GetConfigFile())
		fmt.Fprintf(out, "database: %s\n", app.Config.Database.Path)
		return nil
	},
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if schemaWrite {
			dir, err := config.GetConfigDir()
			if err != nil {
				return err
			}
			if err := config.EnsureDirectories(); err != nil {
				return err
			}
			path, err := config.WriteSchemaFile(dir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		}

		data, err := config.Schema()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPathCmd, configSchemaCmd)
	configSchemaCmd.Flags().BoolVar(&schemaWrite, "write", false, "write config.schema.json next to the config file")
}
