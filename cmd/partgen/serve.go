package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-partgen/internal/server"
	"github.com/goliatone/go-partgen/pkg/invoke"
	"github.com/goliatone/go-partgen/pkg/quality"
)

var serveCmd = &cobra.Command{
	Use:   "serve <main.scad>",
	Short: "Serve the upload form and render endpoint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "partgen"})
		if verbose {
			logger.SetLevel(log.DebugLevel)
		}

		settings, err := qualityFromConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv, err := server.New(ctx, server.Config{
			Addr:          viper.GetString("listen"),
			EntryPath:     args[0],
			Quality:       settings,
			RenderTimeout: viper.GetDuration("render_timeout"),
			Runner: invoke.NewExecRunner(
				invoke.WithBinary(viper.GetString("openscad_binary")),
				invoke.WithLogger(logger),
			),
			Logger: logger,
		})
		if err != nil {
			return err
		}

		logger.Info("discovered parameters", "count", srv.Template().Len())
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("listen", "127.0.0.1:8080", "listen address")
	_ = viper.BindPFlag("listen", serveCmd.Flags().Lookup("listen"))
}

func qualityFromConfig() (quality.Settings, error) {
	store, err := quality.EmbeddedStore()
	if err != nil {
		return quality.Settings{}, fmt.Errorf("load quality presets: %w", err)
	}
	name := viper.GetString("quality_preset")
	settings, ok := store.Get(name)
	if !ok {
		return quality.Settings{}, fmt.Errorf("unknown quality preset %q (have %v)", name, store.Names())
	}
	return settings, nil
}
