package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/talentscout/screener/internal/logger"
	"github.com/talentscout/screener/internal/screening"
	"github.com/talentscout/screener/internal/store"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Run an interactive screening conversation in the terminal",
	Run: func(cmd *cobra.Command, _ []string) {
		chat(cmd)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringP("language", "l", "", "conversation language: english or hindi")
	chatCmd.Flags().StringP("data-file", "o", "", "candidate csv file. Default is data/candidates.csv")

	viper.BindPFlag("chat.language", chatCmd.Flags().Lookup("language"))
	viper.BindPFlag("data-file", chatCmd.Flags().Lookup("data-file"))
}

func chat(cmd *cobra.Command) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	config, err := getConfig()
	if err != nil {
		log.Fatalf("getting a config: %v", err)
	}

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"), logFile(config))
	if err != nil {
		log.Fatalf("creating a logger: %v", err)
	}

	zlog.Info("starting the talentscout chat", zap.String("version", version))

	generator, err := newGenerator(ctx, config, zlog)
	if err != nil {
		zlog.Warn("model client unavailable, using fixed prompt templates",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY, GEMINI_API_KEY_FILE or the ai.gemini section in the configuration file"),
		)
		generator = nil
	}

	sink := store.NewCSV(config.DataFile, zlog)
	session := screening.NewSession(uuid.NewString(), generator, sink, sessionConfig(config), zlog)

	fmt.Println(session.Greeting())

	prompt := promptui.Prompt{Label: "you"}
	for {
		input, err := prompt.Run()
		if err != nil {
			// Ctrl-C or Ctrl-D: close the session the same way a goodbye does
			// so the collected record is still summarized and saved.
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				reply := session.HandleTurn(ctx, "bye")
				fmt.Println(reply.Text)
				return
			}
			zlog.Fatal("reading input", zap.Error(err))
		}

		if strings.TrimSpace(input) == "" {
			continue
		}

		reply := session.HandleTurn(ctx, input)
		fmt.Println(reply.Text)

		if reply.Closed {
			return
		}
	}
}
