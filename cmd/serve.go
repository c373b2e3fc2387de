package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/talentscout/screener/internal/logger"
	"github.com/talentscout/screener/internal/screening"
	"github.com/talentscout/screener/internal/server"
	"github.com/talentscout/screener/internal/store"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the screening conversation over an HTTP turn API",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("port", "p", "", "port to listen on. Default is "+defaultPort)

	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
}

func serve(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	config, err := getConfig()
	if err != nil {
		log.Fatalf("getting a config: %v", err)
	}

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"), logFile(config))
	if err != nil {
		log.Fatalf("creating a logger: %v", err)
	}

	zlog.Info("starting the talentscout server", zap.String("version", version))

	generator, err := newGenerator(ctx, config, zlog)
	if err != nil {
		zlog.Warn("model client unavailable, using fixed prompt templates", zap.Error(err))
		generator = nil
	}

	sink := store.NewCSV(config.DataFile, zlog)
	sessionCfg := sessionConfig(config)

	manager := server.NewManager(func(id string) *screening.Session {
		return screening.NewSession(id, generator, sink, sessionCfg, zlog)
	})

	port := defaultPort
	if config.Server != nil && config.Server.Port != "" {
		port = config.Server.Port
	}

	srv := server.New(server.Config{Port: port}, manager, zlog)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			zlog.Fatal("http transport failed", zap.Error(err))
		}
	case <-ctx.Done():
		zlog.Info("shutting down", zap.Int("active_sessions", manager.Len()))
		if err := srv.Shutdown(); err != nil {
			zlog.Fatal("shutdown failed", zap.Error(err))
		}
	}
}
