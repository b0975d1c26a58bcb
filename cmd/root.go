package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	httpcmd "github.com/Mahsabeigi33/AdminKingsCare/cmd/http"
	systemcmd "github.com/Mahsabeigi33/AdminKingsCare/cmd/system"
)

var (
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "kingscare",
	Short: "Kings Care admin back-office for a medical clinic.",
	Long: `Kings Care is the administrative back-office for a medical clinic.
It manages appointments, patients, doctors, the service catalog and the
public site content behind one API.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global config flag, available for all commands.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")

	// Attach top-level command trees.
	rootCmd.AddCommand(systemcmd.NewSystemCommand())
	rootCmd.AddCommand(httpcmd.NewHTTPCommand())
}
