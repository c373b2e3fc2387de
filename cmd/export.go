package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/talentscout/screener/internal/logger"
	"github.com/talentscout/screener/internal/store"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the stored candidate records",
	Run: func(cmd *cobra.Command, _ []string) {
		export(cmd)
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func export(_ *cobra.Command) {
	config, err := getConfig()
	if err != nil {
		log.Fatalf("getting a config: %v", err)
	}

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"), logFile(config))
	if err != nil {
		log.Fatalf("creating a logger: %v", err)
	}

	rows, err := store.NewCSV(config.DataFile, zlog).ReadAll()
	if err != nil {
		zlog.Fatal("reading candidate store", zap.Error(err))
	}

	if len(rows) < 2 {
		zlog.Info("no candidates stored yet", zap.String("path", config.DataFile))
		return
	}

	header := rows[0]
	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				record[col] = row[i]
			}
		}
		records = append(records, record)
	}

	// do not bother error since rows came from our own csv schema
	pretty, _ := json.MarshalIndent(records, "", "  ")
	fmt.Println(string(pretty))
}
