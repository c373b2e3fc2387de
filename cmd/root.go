package cmd

import (
	"context"
	"errors"
	"log"

	"github.com/talentscout/screener/internal/ai"
	"github.com/talentscout/screener/internal/ai/gemini"
	"github.com/talentscout/screener/internal/screening"
	"github.com/talentscout/screener/internal/secrets"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	app = "talentscout"

	defaultDataFile = "data/candidates.csv"
	defaultPort     = "8080"
)

type Config struct {
	DataFile string      `mapstructure:"data-file"`
	Log      *LogConfig  `mapstructure:"log"`
	Chat     *ChatConfig `mapstructure:"chat"`
	Server   *struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	AI *AIConfig `mapstructure:"ai"`
}

type LogConfig struct {
	File string `mapstructure:"file"`
}

type ChatConfig struct {
	Language        string   `mapstructure:"language"`
	GoodbyeKeywords []string `mapstructure:"goodbye-keywords"`
	HistoryWindow   int      `mapstructure:"history-window"`
}

type AIConfig struct {
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "talentscout is an AI hiring assistant that screens candidates through a chat conversation",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is talentscout.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// .env is optional; it carries GEMINI_API_KEY during local development.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// A missing config file is fine since every setting has a default. A
	// config file parsed with error is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	config := &Config{
		DataFile: defaultDataFile,
	}

	decoderCfg := &mapstructure.DecoderConfig{
		Result:           config,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(decoderCfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(viper.AllSettings()); err != nil {
		return nil, err
	}

	if config.DataFile == "" {
		config.DataFile = defaultDataFile
	}

	return config, nil
}

// newGenerator builds the Gemini text generator from the config. A missing or
// unusable API key returns an error so callers can degrade to fixed templates.
func newGenerator(ctx context.Context, config *Config, logger *zap.Logger) (ai.TextGenerator, error) {
	gcfg := &GeminiConfig{}
	if config.AI != nil && config.AI.Gemini != nil {
		gcfg = config.AI.Gemini
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: gcfg.APIKey,
		Env:   "GEMINI_API_KEY",
		File:  gcfg.APIKeyFile,
	})
	if err != nil {
		return nil, err
	}

	genLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", gemini.ResolveModel(gcfg.Model)),
	)

	return gemini.NewGenerator(ctx, apiKey, gcfg.Model, gcfg.MaxRetries, genLogger)
}

func sessionConfig(config *Config) *screening.Config {
	cfg := &screening.Config{}
	if config.Chat != nil {
		cfg.Language = screening.ParseLanguage(config.Chat.Language)
		cfg.GoodbyeKeywords = config.Chat.GoodbyeKeywords
		cfg.HistoryWindow = config.Chat.HistoryWindow
	}
	if config.AI != nil && config.AI.Gemini != nil {
		cfg.MaxLogLength = config.AI.Gemini.MaxLogLength
	}
	return cfg
}

func logFile(config *Config) string {
	if config.Log == nil {
		return ""
	}
	return config.Log.File
}
