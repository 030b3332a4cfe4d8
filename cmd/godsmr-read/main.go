package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/goburrow/serial"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"gitlab.com/d21d3q/godsmr/internal/config"
	"gitlab.com/d21d3q/godsmr/pkg/godsmr"
)

var (
	rootCmd = &cobra.Command{
		Use:   "godsmr-read",
		Short: "Read and decode telegrams from a serial P1 port",
		Long:  "godsmr-read opens the serial P1 port described by the configuration file and prints every decoded telegram.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}
			config.Normalize(cfg)
			return runRead(cfg)
		},
	}

	configPath string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "godsmr.yaml", "path to the YAML configuration file")
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func runRead(cfg *config.Config) error {
	port, err := serial.Open(&serial.Config{
		Address:  cfg.Port.Device,
		BaudRate: cfg.Port.BaudRate,
		DataBits: cfg.Port.DataBits,
		StopBits: cfg.Port.StopBits,
		Parity:   cfg.Port.Parity,
		Timeout:  time.Duration(cfg.Port.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return fmt.Errorf("open %s: %w", cfg.Port.Device, err)
	}
	defer port.Close()
	logrus.WithFields(logrus.Fields{
		"device":     cfg.Port.Device,
		"baud_rate":  cfg.Port.BaudRate,
		"vocabulary": cfg.Decode.Vocabulary,
	}).Info("listening on P1 port")

	opts := godsmr.AnalyzeOptions{Vocabulary: godsmr.Vocabulary(cfg.Decode.Vocabulary)}
	scanner := godsmr.NewScanner(port, opts)
	for {
		result, err := scanner.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			logrus.WithError(err).Error("failed to decode telegram")
			continue
		}
		fmt.Println(result.String())
	}
}
