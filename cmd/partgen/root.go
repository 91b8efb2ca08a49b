// Command partgen discovers overridable parameters in an OpenSCAD document
// tree and serves a web form that renders printable STLs through openscad.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is set via -ldflags at release time.
var Version = "dev"

var (
	cfgFile string
	verbose bool

	rootCmd = &cobra.Command{
		Use:   "partgen",
		Short: "Parameter discovery and STL generation for OpenSCAD models",
		Long: `partgen scans an OpenSCAD document tree for overridable constants,
exposes them as a web form, and turns submissions into deterministic
openscad override invocations.

Examples:
  partgen params model/main.scad     List the discovered parameters
  partgen serve  model/main.scad     Serve the upload form on :8080
  partgen render model/main.scad     Prompt for values and render once`,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/partgen/config.yaml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(paramsCmd)
	rootCmd.AddCommand(renderCmd)
}

// Execute runs the root command. Called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// initConfig reads the config file and PARTGEN_* environment variables.
func initConfig() {
	viper.SetDefault("listen", "127.0.0.1:8080")
	viper.SetDefault("openscad_binary", "openscad")
	viper.SetDefault("quality_preset", "standard")
	viper.SetDefault("render_timeout", "5m")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "partgen"))
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("partgen")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "warning: read config:", err)
		}
	}

	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}
