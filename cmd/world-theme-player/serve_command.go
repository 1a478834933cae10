package main

import (
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/justestif/go-world-theme-player/internal/eras"
	"github.com/justestif/go-world-theme-player/internal/results"
	"github.com/justestif/go-world-theme-player/internal/web"
	webfs "github.com/justestif/go-world-theme-player/web"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the results dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger(cmd)
			if err != nil {
				return err
			}

			templates, err := fs.Sub(webfs.TemplatesFS, "templates")
			if err != nil {
				return fmt.Errorf("creating templates filesystem: %w", err)
			}
			static, err := fs.Sub(webfs.StaticFS, "static")
			if err != nil {
				return fmt.Errorf("creating static filesystem: %w", err)
			}

			if addr == "" {
				addr = cfg.Server.Addr
			}

			store := results.NewStore(cfg.Paths.ResultsDir)
			server, err := web.NewServer(web.ServerConfig{
				Addr:        addr,
				TemplatesFS: templates,
				StaticFS:    static,
				Results:     store,
				Eras:        eras.New(store),
				MusicDir:    cfg.Paths.MusicDir,
				LogFile:     cfg.Paths.LogFile,
				Logger:      logger,
			})
			if err != nil {
				return fmt.Errorf("creating server: %w", err)
			}

			return server.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	return cmd
}
