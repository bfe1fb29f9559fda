package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/pagelens/pagelens/internal/geometry"
	"github.com/pagelens/pagelens/internal/pipeline"
)

var detectCmd = &cobra.Command{
	Use:   "detect [image]",
	Short: "Locate text regions without recognizing them",
	Args:  cobra.ExactArgs(1),
	RunE:  runDetect,
}

var (
	detectReader readerFlags
	detectDetect detectFlags
)

// detectOutput is the JSON shape printed by the detect subcommand.
type detectOutput struct {
	Boxes     []geometry.Rect `json:"boxes"`
	FreeBoxes []geometry.Quad `json:"free_boxes"`
	Count     int             `json:"count"`
}

func init() {
	RootCmd.AddCommand(detectCmd)
	detectReader.register(detectCmd)
	detectDetect.register(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	reader, err := detectReader.build()
	if err != nil {
		return err
	}

	img, err := pipeline.LoadImage(args[0])
	if err != nil {
		return err
	}

	rects, quads, err := reader.Detect(img, detectDetect.options())
	if err != nil {
		return err
	}

	out := detectOutput{
		Boxes:     rects,
		FreeBoxes: quads,
		Count:     len(rects) + len(quads),
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
