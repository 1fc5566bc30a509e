// Command steelcut runs the cutting-stock optimizer against a JSON
// OptimizeRequest read from a file or stdin, and writes the resulting
// OptimizeResult as JSON to stdout.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v5"
	"github.com/vbauerster/mpb/v5/decor"
	"gitlab.com/ironspan/cutstock/modules"
	"gitlab.com/ironspan/cutstock/optimizer"
)

var (
	inputPath  string
	showBar    bool
	wasteFloor int
)

func main() {
	root := &cobra.Command{
		Use:   "steelcut",
		Short: "run the cutting-stock optimizer against a request file",
		Args:  cobra.NoArgs,
		RunE:  runOptimize,
	}
	root.Flags().StringVarP(&inputPath, "input", "i", "", "path to an OptimizeRequest JSON file (default: stdin)")
	root.Flags().BoolVar(&showBar, "progress", false, "render a progress bar while groups run")
	root.Flags().IntVar(&wasteFloor, "waste-threshold", 0, "override the request's wasteThreshold, in mm")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runOptimize(cmd *cobra.Command, args []string) error {
	src := os.Stdin
	if inputPath != "" {
		f, err := os.Open(inputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		src = f
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return err
	}

	var req modules.OptimizeRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("decoding request: %w", err)
	}
	if wasteFloor > 0 {
		req.Constraints.WasteThreshold = wasteFloor
	}

	var bar *mpb.Bar
	var p *mpb.Progress
	if showBar {
		p = mpb.New(mpb.WithWidth(60))
		bar = p.AddBar(int64(len(req.DesignParts)),
			mpb.PrependDecorators(decor.Name("optimizing")),
			mpb.AppendDecorators(decor.Percentage()),
		)
		bar.SetCurrent(0)
	}

	cfg := optimizer.DefaultConfig()
	log, err := optimizer.NewLogger(os.Stderr, "steelcut")
	if err != nil {
		return err
	}

	result, err := optimizer.Optimize(req, cfg, log)
	if bar != nil {
		bar.SetCurrent(int64(len(req.DesignParts)))
		p.Wait()
	}
	if err != nil {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
