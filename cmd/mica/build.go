package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"mica/internal/buildpipeline"
	"mica/internal/diagfmt"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [file.mi]",
	Short: "Compile a mica program to textual LLVM IR",
	Long:  "Build compiles one mica source file (or the mica.toml [build].main entry) into a textual IR artifact.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  buildExecution,
}

func init() {
	buildCmd.Flags().StringP("output", "o", "", "artifact path (default "+buildpipeline.DefaultOutputPath+")")
	buildCmd.Flags().Bool("cache", false, "reuse and store artifacts in the user cache")
	buildCmd.Flags().Bool("timings", false, "show stage timing information")
	buildCmd.Flags().Bool("quiet", false, "do not mirror the emitted IR to stderr")
}

func buildExecution(cmd *cobra.Command, args []string) error {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return err
	}
	showTimings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return err
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	target, _, err := resolveBuildTarget(args)
	if err != nil {
		return err
	}

	req := &buildpipeline.BuildRequest{
		CompileRequest: buildpipeline.CompileRequest{
			Path:           target,
			MaxDiagnostics: maxDiagnostics,
		},
		OutputPath: output,
	}
	if !quiet {
		req.Mirror = os.Stderr
	}
	if useCache {
		cache, cerr := buildpipeline.OpenArtifactCache("mica")
		if cerr != nil {
			return fmt.Errorf("opening artifact cache: %w", cerr)
		}
		req.Cache = cache
	}

	res, err := buildpipeline.Build(req)
	printDiagnostics(cmd, res.Compile)
	if showTimings {
		printStageTimings(os.Stdout, res.Timings)
	}
	if err != nil {
		return err
	}

	if _, ferr := fmt.Fprintf(os.Stdout, "built %s\n", res.OutputPath); ferr != nil {
		return ferr
	}
	return nil
}

func printDiagnostics(cmd *cobra.Command, cres *buildpipeline.CompileResult) {
	if cres == nil || cres.Bag == nil || cres.Bag.Len() == 0 {
		return
	}
	cres.Bag.Sort()
	diagfmt.Pretty(os.Stderr, cres.Bag, cres.FileSet, diagfmt.Options{
		Color:   useColor(cmd, os.Stderr),
		Context: true,
	})
}

func printStageTimings(out *os.File, t buildpipeline.Timings) {
	stages := []buildpipeline.Stage{
		buildpipeline.StageLoad,
		buildpipeline.StageParse,
		buildpipeline.StageLower,
		buildpipeline.StageEmit,
	}
	for _, stage := range stages {
		if !t.Has(stage) {
			continue
		}
		fmt.Fprintf(out, "%-6s %s\n", stage, t.Duration(stage).Round(time.Microsecond))
	}
	fmt.Fprintf(out, "total  %s\n", t.Sum(stages...).Round(time.Microsecond))
}
