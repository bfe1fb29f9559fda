package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pagelens/pagelens/internal/overlay"
	"github.com/pagelens/pagelens/internal/pipeline"
)

// detectFlags hold the detection and clustering knobs shared by the read and
// detect subcommands.
type detectFlags struct {
	minSize         int
	textThreshold   float64
	lowText         float64
	linkThreshold   float64
	canvasSize      int
	magRatio        float64
	slopeThs        float64
	ycenterThs      float64
	heightThs       float64
	widthThs        float64
	addMargin       float64
	optimalNumChars int
}

func (f *detectFlags) register(cmd *cobra.Command) {
	d := pipeline.DefaultDetectOptions()
	cmd.Flags().IntVar(&f.minSize, "min-size", d.MinSize, "Drop boxes whose larger side is at most this many pixels")
	cmd.Flags().Float64Var(&f.textThreshold, "text-threshold", d.TextThreshold, "Text confidence threshold")
	cmd.Flags().Float64Var(&f.lowText, "low-text", d.LowText, "Low-bound text score")
	cmd.Flags().Float64Var(&f.linkThreshold, "link-threshold", d.LinkThreshold, "Link confidence threshold")
	cmd.Flags().IntVar(&f.canvasSize, "canvas-size", d.CanvasSize, "Maximum image dimension fed to the detector")
	cmd.Flags().Float64Var(&f.magRatio, "mag-ratio", d.MagRatio, "Image magnification ratio")
	cmd.Flags().Float64Var(&f.slopeThs, "slope-ths", d.SlopeThs, "Maximum slope to consider a box horizontal")
	cmd.Flags().Float64Var(&f.ycenterThs, "ycenter-ths", d.YCenterThs, "Maximum vertical center shift for row clustering")
	cmd.Flags().Float64Var(&f.heightThs, "height-ths", d.HeightThs, "Maximum height difference for merging boxes")
	cmd.Flags().Float64Var(&f.widthThs, "width-ths", d.WidthThs, "Maximum horizontal gap for merging boxes")
	cmd.Flags().Float64Var(&f.addMargin, "add-margin", d.AddMargin, "Margin added around boxes, as a fraction of box height")
	cmd.Flags().IntVar(&f.optimalNumChars, "optimal-num-chars", 0, "When positive, skip box merging")
}

func (f *detectFlags) options() pipeline.DetectOptions {
	return pipeline.DetectOptions{
		MinSize:         f.minSize,
		TextThreshold:   f.textThreshold,
		LowText:         f.lowText,
		LinkThreshold:   f.linkThreshold,
		CanvasSize:      f.canvasSize,
		MagRatio:        f.magRatio,
		SlopeThs:        f.slopeThs,
		YCenterThs:      f.ycenterThs,
		HeightThs:       f.heightThs,
		WidthThs:        f.widthThs,
		AddMargin:       f.addMargin,
		OptimalNumChars: f.optimalNumChars,
	}
}

// recognizeFlags hold the transcription knobs of the read subcommand.
type recognizeFlags struct {
	decoder        string
	beamWidth      int
	allowlist      string
	blocklist      string
	rotate         []int
	paragraph      bool
	xThs           float64
	yThs           float64
	contrastThs    float64
	adjustContrast float64
}

func (f *recognizeFlags) register(cmd *cobra.Command) {
	r := pipeline.DefaultRecognizeOptions()
	cmd.Flags().StringVar(&f.decoder, "decoder", r.Decoder, "Sequence decoder: greedy, beamsearch or wordbeamsearch")
	cmd.Flags().IntVar(&f.beamWidth, "beam-width", r.BeamWidth, "Beam width for the beam decoders")
	cmd.Flags().StringVar(&f.allowlist, "allowlist", "", "Force recognition to only these characters")
	cmd.Flags().StringVar(&f.blocklist, "blocklist", "", "Characters never recognized (ignored when allowlist is set)")
	cmd.Flags().IntSliceVar(&f.rotate, "rotate", nil, "Extra orientations to try per box (90, 180, 270)")
	cmd.Flags().BoolVar(&f.paragraph, "paragraph", false, "Merge lines into paragraphs")
	cmd.Flags().Float64Var(&f.xThs, "x-ths", r.XThs, "Horizontal paragraph merge tolerance")
	cmd.Flags().Float64Var(&f.yThs, "y-ths", r.YThs, "Vertical paragraph merge tolerance")
	cmd.Flags().Float64Var(&f.contrastThs, "contrast-ths", r.ContrastThs, "Confidence below which a contrast-boosted retry runs")
	cmd.Flags().Float64Var(&f.adjustContrast, "adjust-contrast", r.AdjustContrast, "Target contrast for the retry pass")
}

func (f *recognizeFlags) options() pipeline.RecognizeOptions {
	return pipeline.RecognizeOptions{
		Decoder:        f.decoder,
		BeamWidth:      f.beamWidth,
		Allowlist:      f.allowlist,
		Blocklist:      f.blocklist,
		RotationHints:  f.rotate,
		Paragraph:      f.paragraph,
		XThs:           f.xThs,
		YThs:           f.yThs,
		ContrastThs:    f.contrastThs,
		AdjustContrast: f.adjustContrast,
	}
}

var readCmd = &cobra.Command{
	Use:   "read [image]",
	Short: "Detect and recognize text in an image",
	Long: `Run the full pipeline on one image: locate text regions, rectify them
into strips, recognize each strip, and print the results.

By default every result is printed as JSON with its box, text and
confidence. With --detail=0 only the recognized text is printed, one
result per line.`,
	Args: cobra.ExactArgs(1),
	RunE: runRead,
}

var (
	readReader    readerFlags
	readDetect    detectFlags
	readRecognize recognizeFlags
	readDetail    int
	readAnnotate  string
)

func init() {
	RootCmd.AddCommand(readCmd)
	readReader.register(readCmd)
	readDetect.register(readCmd)
	readRecognize.register(readCmd)
	readCmd.Flags().IntVar(&readDetail, "detail", 1, "Output detail: 0 for plain text, 1 for boxes and confidence")
	readCmd.Flags().StringVar(&readAnnotate, "annotate", "", "Write a copy of the image with result boxes drawn to this path")
}

func runRead(cmd *cobra.Command, args []string) error {
	reader, err := readReader.build()
	if err != nil {
		return err
	}

	img, err := pipeline.LoadImage(args[0])
	if err != nil {
		return err
	}

	results, err := reader.ReadText(img, readDetect.options(), readRecognize.options())
	if err != nil {
		return err
	}

	if readAnnotate != "" {
		annotated := overlay.Annotate(img, results, overlay.DefaultOptions())
		if err := overlay.SavePNG(readAnnotate, annotated); err != nil {
			return err
		}
	}

	if readDetail == 0 {
		for _, text := range pipeline.Texts(results) {
			fmt.Fprintln(cmd.OutOrStdout(), text)
		}
		return nil
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}
