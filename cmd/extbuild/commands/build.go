package commands

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/extbuild/internal/core/domain"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [jobs...]",
		Short: "Build extension modules",
		Long: "Build the named jobs from the manifest, or every job when none are named.\n" +
			"With --src, compile a single source file directly without a manifest.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, _ := cmd.Flags().GetString("src")
			if src != "" {
				return c.runBuildFile(cmd, src)
			}

			config, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}
			return c.app.Run(cmd.Context(), config, args)
		},
	}
	cmd.Flags().String("src", "", "Compile a single C source file instead of manifest jobs")
	cmd.Flags().String("name", "", "Module name for --src (defaults to the source basename)")
	cmd.Flags().String("srcdir", "", "Working directory for --src (defaults to the source's directory)")
	cmd.Flags().String("backend", "cuda", "Toolkit backend for --src (cuda or rocm)")
	return cmd
}

func (c *CLI) runBuildFile(cmd *cobra.Command, src string) error {
	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		base := filepath.Base(src)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	srcDir, _ := cmd.Flags().GetString("srcdir")

	backendStr, _ := cmd.Flags().GetString("backend")
	backend, err := domain.ParseBackend(backendStr)
	if err != nil {
		return err
	}

	artifact, err := c.app.BuildFile(cmd.Context(), &domain.Job{
		Name:    name,
		Source:  src,
		SrcDir:  srcDir,
		Backend: backend,
	})
	if err != nil {
		return err
	}
	cmd.Println(artifact)
	return nil
}
