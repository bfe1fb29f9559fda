package cli

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/pagelens/pagelens/internal/detect"
	"github.com/pagelens/pagelens/internal/model"
	"github.com/pagelens/pagelens/internal/ocr"
	"github.com/pagelens/pagelens/internal/pipeline"
)

// readerFlags are the flags shared by every subcommand that builds a
// pipeline.
type readerFlags struct {
	langs         []string
	gpu           bool
	modelDir      string
	download      bool
	network       string
	networkConfig string
}

func (f *readerFlags) build() (*pipeline.Reader, error) {
	if f.gpu {
		slog.Warn("GPU acceleration is not available in this build, using CPU")
	}

	rec, err := ocr.NewTesseract(f.langs)
	if err != nil {
		return nil, fmt.Errorf("building recognizer: %w", err)
	}

	dir := f.modelDir
	if dir == "" {
		dir = model.DefaultDir()
	}
	store := &model.Store{
		Dir:             dir,
		DownloadEnabled: f.download,
		Client:          &http.Client{Timeout: 5 * time.Minute},
		Log:             slog.Default(),
	}

	opts := []pipeline.Option{
		pipeline.WithLogger(slog.Default()),
		pipeline.WithModelStore(store),
	}
	if f.network != "" {
		opts = append(opts, pipeline.WithCustomNetwork(f.network, f.networkConfig))
	}

	return pipeline.NewReader(f.langs, detect.New(slog.Default()), rec, opts...)
}

func (f *readerFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.langs, "langs", "l", []string{"en"}, "Language codes to recognize")
	cmd.Flags().BoolVar(&f.gpu, "gpu", false, "Request GPU acceleration (falls back to CPU)")
	cmd.Flags().StringVar(&f.modelDir, "model-dir", "", "Directory holding model weights (default ~/.pagelens/model)")
	cmd.Flags().BoolVar(&f.download, "download", true, "Download missing model weights")
	cmd.Flags().StringVar(&f.network, "network", "", "Name of a custom recognition network")
	cmd.Flags().StringVar(&f.networkConfig, "network-config", "", "Path to the custom network's YAML config")
	cmd.MarkFlagsRequiredTogether("network", "network-config")
}
