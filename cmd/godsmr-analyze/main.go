package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"gitlab.com/d21d3q/godsmr/pkg/godsmr"
)

var (
	rootCmd = &cobra.Command{
		Use:   "godsmr-analyze [file]",
		Short: "Decode P1 port telegrams",
		Long:  "godsmr-analyze extracts and decodes P1 port telegrams from a file or standard input using the godsmr library.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vocabulary, err := godsmr.ParseVocabulary(vocabularyName)
			if err != nil {
				return err
			}
			opts := godsmr.AnalyzeOptions{Vocabulary: vocabulary}
			if len(args) == 0 {
				return runAnalyze(os.Stdin, opts)
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			return runAnalyze(f, opts)
		},
	}

	vocabularyName string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&vocabularyName, "vocabulary", string(godsmr.VocabularyDSMR5), "object table to decode against (dsmr4, dsmr5, emucs)")
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func runAnalyze(src io.Reader, opts godsmr.AnalyzeOptions) error {
	scanner := godsmr.NewScanner(src, opts)
	decoded := 0
	for {
		result, err := scanner.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			logrus.WithError(err).Error("failed to decode telegram")
			continue
		}
		fmt.Println(result.String())
		decoded++
	}
	if decoded == 0 {
		return errors.New("no telegram found in input")
	}
	return nil
}
