// cmd/root.go
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vne-sim/vne-engine/engine"
)

var (
	snPath     string
	vnrPath    string
	algorithm  string
	logLevel   string
	outputPath string
)

var rootCmd = &cobra.Command{
	Use:   "vne-engine",
	Short: "Virtual Network Embedding batch solver",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Embed a stream of VNRs onto a substrate network",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
		logrus.Infof("Starting VNE run: sn=%s vnrs=%s algorithm=%s", snPath, vnrPath, algorithm)

		sn, err := LoadSubstrateFile(snPath)
		if err != nil {
			logrus.Fatalf("Failed to load SN descriptor: %v", err)
		}

		vnrs, err := LoadVnrFile(vnrPath)
		if err != nil {
			logrus.Fatalf("Failed to load VNR descriptors: %v", err)
		}

		report, results, err := engine.Run(sn, vnrs, engine.AlgorithmChoice(algorithm), logrus.StandardLogger())
		if err != nil {
			logrus.Fatalf("Run aborted: %v", err)
		}

		report.Print()

		if outputPath != "" {
			if err := WriteReport(outputPath, report, results); err != nil {
				logrus.Fatalf("Failed to write report: %v", err)
			}
		}

		logrus.Info("Embedding run complete.")
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	runCmd.Flags().StringVar(&snPath, "sn", "", "Path to the SN descriptor (YAML or JSON)")
	runCmd.Flags().StringVar(&vnrPath, "vnrs", "", "Path to the VNR descriptor stream (YAML or JSON)")
	runCmd.Flags().StringVar(&algorithm, "algorithm", string(engine.AlgorithmEnergyAware), "Node embedding algorithm: energy-aware or first-fit")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (debug, info, warn, error)")
	runCmd.Flags().StringVar(&outputPath, "output", "", "Optional path to write the aggregate report as YAML")
	_ = runCmd.MarkFlagRequired("sn")
	_ = runCmd.MarkFlagRequired("vnrs")

	rootCmd.AddCommand(runCmd)
}
