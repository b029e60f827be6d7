package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stratus/internal/flags"
)

func newRootCmd(app *appContainer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stratus",
		Short: "Stratus is a command-line tool for managing cloud object storage.",
		Long: `A CLI to manage object storage buckets and objects through the
provider's JSON API. Configure your provider credentials and manage
buckets, objects and downloads from one place.`,
	}

	rootCmd.PersistentFlags().Bool(flags.Debug, false, "Enable debug logging")

	rootCmd.AddCommand(newStorageCmd(app))
	rootCmd.AddCommand(newObjectCmd(app))
	rootCmd.AddCommand(newConfigCmd(app))

	return rootCmd
}

func Execute(app *appContainer) {
	if err := newRootCmd(app).Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
