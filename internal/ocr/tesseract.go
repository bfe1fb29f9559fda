package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/pagelens/pagelens/internal/pipeline"
)

// tessCodes maps recognition language codes to Tesseract traineddata names.
var tessCodes = map[string]string{
	"en":          "eng",
	"fr":          "fra",
	"de":          "deu",
	"es":          "spa",
	"pt":          "por",
	"it":          "ita",
	"nl":          "nld",
	"pl":          "pol",
	"tr":          "tur",
	"id":          "ind",
	"ms":          "msa",
	"vi":          "vie",
	"ru":          "rus",
	"rs_cyrillic": "srp",
	"be":          "bel",
	"bg":          "bul",
	"uk":          "ukr",
	"mn":          "mon",
	"hi":          "hin",
	"mr":          "mar",
	"ne":          "nep",
	"bn":          "ben",
	"as":          "asm",
	"ta":          "tam",
	"te":          "tel",
	"kn":          "kan",
	"th":          "tha",
	"ko":          "kor",
	"ja":          "jpn",
	"ch_sim":      "chi_sim",
	"ch_tra":      "chi_tra",
	"ar":          "ara",
	"fa":          "fas",
	"ur":          "urd",
	"ug":          "uig",
}

// Tesseract recognizes text strips through a system Tesseract installation.
// It implements pipeline.Recognizer. A fresh client is created per batch, so
// one Tesseract value may be shared across goroutines.
type Tesseract struct {
	languages []string
}

// NewTesseract builds a recognizer for the given language codes. The
// corresponding Tesseract traineddata must be installed.
func NewTesseract(langs []string) (*Tesseract, error) {
	if len(langs) == 0 {
		return nil, fmt.Errorf("no languages given")
	}
	codes := make([]string, 0, len(langs))
	for _, l := range langs {
		code, ok := tessCodes[l]
		if !ok {
			return nil, fmt.Errorf("language %q has no tesseract mapping", l)
		}
		codes = append(codes, code)
	}
	return &Tesseract{languages: codes}, nil
}

// RecognizeBatch implements pipeline.Recognizer.
func (t *Tesseract) RecognizeBatch(strips []*image.NRGBA, p pipeline.RecognizerParams) ([]pipeline.Prediction, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.languages...); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_LINE); err != nil {
		return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	if p.IgnoreChars != "" {
		if err := client.SetBlacklist(p.IgnoreChars); err != nil {
			return nil, fmt.Errorf("failed to set character blacklist: %w", err)
		}
	}

	preds := make([]pipeline.Prediction, len(strips))
	var buf bytes.Buffer
	for i, s := range strips {
		buf.Reset()
		if err := png.Encode(&buf, s); err != nil {
			return nil, fmt.Errorf("failed to encode strip %d: %w", i, err)
		}
		if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
			return nil, fmt.Errorf("failed to set strip %d: %w", i, err)
		}

		pred, err := recognizeOne(client)
		if err != nil {
			return nil, fmt.Errorf("strip %d: %w", i, err)
		}
		preds[i] = pred
	}
	return preds, nil
}

func recognizeOne(client *gosseract.Client) (pipeline.Prediction, error) {
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		// Some configurations cannot iterate words; fall back to plain
		// text with unknown confidence.
		text, terr := client.Text()
		if terr != nil {
			return pipeline.Prediction{}, fmt.Errorf("OCR failed: %w", terr)
		}
		return pipeline.Prediction{Text: strings.TrimSpace(text)}, nil
	}

	words := make([]string, 0, len(boxes))
	sum := 0.0
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		words = append(words, box.Word)
		sum += float64(box.Confidence) / 100.0
	}
	if len(words) == 0 {
		return pipeline.Prediction{}, nil
	}
	return pipeline.Prediction{
		Text:       strings.Join(words, " "),
		Confidence: sum / float64(len(words)),
	}, nil
}
