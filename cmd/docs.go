package cmd

// Hidden command generating the CLI reference from the command tree

import (
	"fmt"
	"os"

	"github.com/cedana/graphbench/pkg/flags"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

const defaultDocsDir = "docs/cli"

func init() {
	docGenCmd.Flags().String(flags.DocsDirFlag.Full, defaultDocsDir, "directory the reference is written to, replaced if it exists")
	docGenCmd.MarkFlagDirname(flags.DocsDirFlag.Full)
	docGenCmd.Flags().Bool(flags.ManFlag.Full, false, "write man pages instead of markdown")
}

var docGenCmd = &cobra.Command{
	Use:    "docs-gen",
	Hidden: true,
	Short:  "Generate the graphbench CLI reference",
	Args:   cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString(flags.DocsDirFlag.Full)
		man, _ := cmd.Flags().GetBool(flags.ManFlag.Full)

		if err := os.RemoveAll(dir); err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}

		// Generated files stay stable between runs
		rootCmd.DisableAutoGenTag = true

		var err error
		if man {
			err = doc.GenManTree(rootCmd, &doc.GenManHeader{Title: "GRAPHBENCH", Section: "1"}, dir)
		} else {
			err = doc.GenMarkdownTree(rootCmd, dir)
		}
		if err != nil {
			return fmt.Errorf("failed to generate docs: %w", err)
		}

		log.Ctx(cmd.Context()).Info().Str("dir", dir).Bool("man", man).Msg("generated CLI reference")
		return nil
	},
}
