package cli

import (
	"fmt"
	"os"

	"github.com/pablasso/kanban/internal/config"
	"github.com/pablasso/kanban/internal/version"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create configuration files",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the merged configuration",
		Long:  `Print the configuration after merging defaults, config files, KANBAN_* environment variables and flags.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(a.cfg); err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			return enc.Close()
		},
	}

	pathCmd := &cobra.Command{
		Use:         "path",
		Short:       "Print config file locations",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipSetup: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, p := range []struct{ name, path string }{
				{"global", config.GlobalConfigPath()},
				{"project", config.ProjectConfigPath()},
			} {
				state := "missing"
				if _, err := os.Stat(p.path); err == nil {
					state = "found"
				}
				fmt.Fprintf(out, "%-8s %s (%s)\n", p.name, p.path, state)
			}
			return nil
		},
	}

	var global bool
	initCmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a default config file",
		Long:        "Creates .kanban/config.yaml in the current directory, or in your home directory with --global.",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipSetup: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ProjectConfigPath()
			if global {
				path = config.GlobalConfigPath()
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Created", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&global, "global", false, "write ~/.kanban/config.yaml instead")

	configCmd.AddCommand(showCmd, pathCmd, initCmd)
	return configCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipSetup: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
