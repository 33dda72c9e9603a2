package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/mrsinham/starforge/cmd/starforge/wizard"
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "starforge",
		Short:         "synthetic Gaussian source image generator",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var gen batchFlags
	var catalogPath string
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "render a source catalog into images",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, &gen, catalogPath)
		},
	}
	generateCmd.Flags().StringVar(&catalogPath, "catalog", "", "source catalog (.csv, .yaml) (required)")
	_ = generateCmd.MarkFlagRequired("catalog")
	gen.register(generateCmd, 1)

	var rnd batchFlags
	var src sourceFlags
	randomCmd := &cobra.Command{
		Use:   "random",
		Short: "generate images of randomly sampled sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRandom(cmd, &rnd, &src)
		},
	}
	rnd.register(randomCmd, 10)
	src.register(randomCmd)

	var smp sourceFlags
	var sampleShape, sampleSeed, sampleOut string
	sampleCmd := &cobra.Command{
		Use:   "sample",
		Short: "write a random source catalog without rendering it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSample(cmd, &smp, sampleShape, sampleSeed, sampleOut)
		},
	}
	sampleCmd.Flags().StringVar(&sampleShape, "shape", "256x256", "image shape HEIGHTxWIDTH")
	sampleCmd.Flags().StringVar(&sampleSeed, "seed", "", "seed (empty = random)")
	sampleCmd.Flags().StringVarP(&sampleOut, "output", "o", "-", "catalog file (.csv, .yaml), - for CSV on stdout")
	smp.register(sampleCmd)

	var prof profileFlags
	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "plot a row or column cut through a rendered catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfile(cmd, &prof)
		},
	}
	prof.register(profileCmd)

	var fromConfig string
	wizardCmd := &cobra.Command{
		Use:   "wizard",
		Short: "configure and run generation interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return wizard.Run(fromConfig)
		},
	}
	wizardCmd.Flags().StringVar(&fromConfig, "from", "", "start from a saved YAML configuration")

	var configFile, saveConfig string
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a batch described by a YAML configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(cmd, configFile, saveConfig)
		},
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "YAML configuration file (required)")
	runCmd.Flags().StringVar(&saveConfig, "save-config", "", "save the resolved configuration to YAML")
	_ = runCmd.MarkFlagRequired("config")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "starforge %s (%s/%s)\n", version, runtime.GOOS, runtime.GOARCH)
		},
	}

	rootCmd.AddCommand(generateCmd, randomCmd, sampleCmd, profileCmd, wizardCmd, runCmd, versionCmd)
	return rootCmd
}
