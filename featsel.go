package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"featsel/pkg"
	"featsel/pkg/model"

	"github.com/spf13/cobra"
)

func SearchCommand() *cobra.Command {
	var algorithm string
	var params pkg.SelectionParameters

	var cmd = &cobra.Command{
		Use:   "search [-i dataFile] [-a forward|backward] [-r reportFile]",
		Short: "Searches the feature subset with the best leave-one-out nearest neighbor accuracy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			if params.DataFile == "" {
				fmt.Fprintln(out, "Welcome to the Feature Selection Algorithm.")
				fmt.Fprint(out, "Type the name of the file to test: ")
				fileName, err := readAnswer(in)
				if err != nil {
					return err
				}
				fmt.Fprintln(out)
				params.DataFile = fileName
			}
			if algorithm == "" {
				fmt.Fprint(out, "Type the number of the algorithm you want to run.\n"+
					"     1) Forward Selection\n"+
					"     2) Backward Elimination\n\n")
				answer, err := readAnswer(in)
				if err != nil {
					return err
				}
				fmt.Fprintln(out)
				algorithm = answer
			}

			mode, err := model.ParseMode(algorithm)
			if err != nil {
				return err
			}
			params.Mode = mode

			_, err = pkg.Select(params, out)
			return err
		},
	}

	cmd.Flags().StringVarP(&params.DataFile, "input", "i", "", "name of data file (prompted for if not present)")
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "search algorithm: forward (1) or backward (2), prompted for if not present")
	cmd.Flags().IntVarP(&params.Precision, "precision", "p", -1, "decimals of printed percentages, negative for 6 significant digits")
	cmd.Flags().StringVarP(&params.ReportFile, "report", "r", "", "name of CSV report file (optional)")
	cmd.Flags().BoolVarP(&params.ClassMetrics, "class-metrics", "m", false, "log per-class metrics of the best subset")

	return cmd
}

func EvaluateCommand() *cobra.Command {
	var dataFile string
	var features []int

	var cmd = &cobra.Command{
		Use:   "evaluate -i dataFile [-f 1,2,3]",
		Short: "Prints the leave-one-out nearest neighbor accuracy of a feature subset, all features by default",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			accuracy, err := pkg.EvaluateFile(dataFile, features)
			if err != nil {
				return err
			}
			subset := "all features"
			if len(features) > 0 {
				subset = model.Format(features)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Using %s accuracy is %g%%\n", subset, accuracy*100)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dataFile, "input", "i", "", "name of data file")
	cmd.Flags().IntSliceVarP(&features, "features", "f", nil, "features to use (1-based)")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func readAnswer(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("error reading answer: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", fmt.Errorf("no answer given")
	}
	return line, nil
}

var logLevel string
var logFormat string

func RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               "featsel",
		Short:             "Greedy wrapper feature selection for nearest neighbor classification",
		SilenceUsage:      true,
		PersistentPreRunE: setupLogging,
	}

	root.PersistentFlags().StringVarP(&logLevel, "log-level", "", "info", "Logging level: info error or debug")
	root.PersistentFlags().StringVarP(&logFormat, "log-format", "", "pretty", "Logging format: pretty or json")

	root.AddCommand(SearchCommand())
	root.AddCommand(EvaluateCommand())
	return root
}

func main() {
	if err := RootCommand().Execute(); err != nil {
		log.Error().Err(err).Msg("")
		os.Exit(1)
	}
}

func setupLogging(cmd *cobra.Command, args []string) error {

	switch logLevel {
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	default:
		return fmt.Errorf("invalid logging level %q", logLevel)
	}

	switch logFormat {
	case "pretty":
		setupPrettyLogging()
	case "json":
	default:
		return fmt.Errorf("invalid log format %q", logFormat)
	}
	return nil
}

func setupPrettyLogging() {
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	writer.FormatFieldValue = func(i interface{}) string {
		switch v := i.(type) {
		case json.Number:
			val, _ := v.Float64()
			return fmt.Sprintf("%.3f", val)
		default:
			return fmt.Sprintf("%s", i)
		}

	}
	log.Logger = log.Output(writer)

}
