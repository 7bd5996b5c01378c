package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"mddocs/config"
)

var (
	initModule string
	initXML    string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default mddocs.yaml",
	Long: `Write the default configuration to mddocs.yaml in the root directory.
An existing file is never overwritten.

Examples:
  mddocs init
  mddocs init --module build/Acme.Widgets.json --xml build/Acme.Widgets.xml`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&initModule, "module", "", "metadata dump of the module")
	initCmd.Flags().StringVar(&initXML, "xml", "", "documentation export")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := filepath.Join(GetRootDir(), config.FileName)
	if _, err := os.Stat(path); err == nil {
		return errors.WithHint(errors.Newf("%s already exists", path), "edit it or remove it first")
	}

	cfg := config.DefaultConfig()
	cfg.Generate.Module = initModule
	cfg.Generate.XML = initXML
	if err := cfg.Save(path); err != nil {
		return errors.Wrap(err, "failed to write config")
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}
