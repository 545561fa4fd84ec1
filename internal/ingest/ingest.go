package ingest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MikeSquared-Agency/ebb/internal/turns"
)

// ErrUnsupportedFormat is returned when a file's format cannot be determined.
var ErrUnsupportedFormat = errors.New("unsupported transcript format")

// Format names accepted by Load.
const (
	FormatText     = "text"
	FormatDocx     = "docx"
	FormatLabelled = "labelled"
	FormatJSONL    = "jsonl"
)

// Document is a loaded transcript. Exactly one of Lines or Messages is set:
// Lines when speakers must be inferred, Messages when the source names them.
type Document struct {
	Path     string
	Format   string
	Lines    []string
	Messages []turns.Message
}

// Labelled reports whether the document carries its own speaker labels.
func (d Document) Labelled() bool {
	return d.Messages != nil
}

// Turns runs the classification pipeline appropriate for the document.
func (d Document) Turns(cfg turns.Config) []turns.Turn {
	if d.Labelled() {
		return turns.BuildLabelledTurns(d.Messages, cfg)
	}
	return turns.BuildTurns(d.Lines, cfg)
}

// DetectFormat maps a file extension to a format name.
func DetectFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".text":
		return FormatText, nil
	case ".docx":
		return FormatDocx, nil
	case ".jsonl":
		return FormatJSONL, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Supported reports whether DetectFormat recognises the file.
func Supported(path string) bool {
	_, err := DetectFormat(path)
	return err == nil
}

// Load reads a transcript. An empty format is detected from the extension.
func Load(path, format string, aliases Aliases) (Document, error) {
	if format == "" {
		f, err := DetectFormat(path)
		if err != nil {
			return Document{}, err
		}
		format = f
	}

	doc := Document{Path: path, Format: format}
	switch format {
	case FormatText:
		f, err := os.Open(path)
		if err != nil {
			return Document{}, fmt.Errorf("open: %w", err)
		}
		defer f.Close()
		lines, err := ReadText(f)
		if err != nil {
			return Document{}, err
		}
		doc.Lines = lines
	case FormatDocx:
		lines, err := ReadDocx(path)
		if err != nil {
			return Document{}, err
		}
		doc.Lines = lines
	case FormatLabelled:
		f, err := os.Open(path)
		if err != nil {
			return Document{}, fmt.Errorf("open: %w", err)
		}
		defer f.Close()
		msgs, err := ParseLabelled(f, aliases)
		if err != nil {
			return Document{}, err
		}
		doc.Messages = msgs
	case FormatJSONL:
		msgs, err := ParseJSONL(path)
		if err != nil {
			return Document{}, err
		}
		doc.Messages = msgs
	default:
		return Document{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return doc, nil
}
