// Copyright © 2025 The Carbide authors

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	colorFlag string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "carbide",
	Short:   "Carbide — contract language frontend analysis",
	Version: "0.4.0",
	Long: `Carbide is the analysis frontend for the Carbide contract language. It
consumes parsed syntax trees in JSON form, registers every declaration into
its scope, resolves identifiers, dotted paths, inline assembly references,
and @inheritdoc tags, and reports what it finds.

Getting started:
  carbide resolve tree.json           Resolve a syntax tree and report diagnostics
  carbide resolve --json tree.json    Report diagnostics as JSON
  carbide resolve --emit-ast t.json   Print the annotated tree as JSON
  cat tree.json | carbide resolve     Resolve a tree from stdin
  carbide explore tree.json           Query resolved names interactively
  carbide explain E7576               Explain a diagnostic code

Syntax trees are JSON documents of nodeType-discriminated objects, the shape
the Carbide parser produces. Resolution never halts on the first problem:
diagnostics accumulate and render together, and a failed binding abandons at
most the subtree that produced it.

Inline assembly blocks use Ingot, the embedded low-level dialect. Host
declarations are visible inside Ingot code by name, with .slot and .offset
suffixes reaching a state variable's storage location.

More information:
  Source code:     https://github.com/carbidelang/carbide`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.carbide.yaml)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto",
		`Control colored output: "auto", "always", or "never".`)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".carbide" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".carbide")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
