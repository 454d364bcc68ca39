// Package loader reads process lists from disk. Three formats are
// understood: the block format (.conf), CSV rows and YAML documents.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jar0582/schedsim/pkg/model"
)

// Format identifies a process file format.
type Format string

const (
	FormatConf Format = "conf"
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

var ErrUnknownFormat = errors.New("unknown process file format")

// DetectFormat picks a format from the file extension. Files without a
// recognised extension are read as the block format.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatConf
	}
}

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatConf, FormatCSV, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Load opens path and parses it according to its extension.
func Load(path string) ([]model.Process, error) {
	return LoadFormat(path, DetectFormat(path))
}

// LoadFormat opens path and parses it as format.
func LoadFormat(path string, format Format) ([]model.Process, error) {
	f, closeFile, err := openProcessingFile(path)
	if err != nil {
		return nil, err
	}
	defer closeFile()
	return Read(f, path, format)
}

// Read parses r as format. name is used in error messages.
func Read(r io.Reader, name string, format Format) ([]model.Process, error) {
	var (
		procs []model.Process
		err   error
	)
	switch format {
	case FormatConf:
		procs, err = parseConf(r, name)
	case FormatCSV:
		procs, err = parseCSV(r, name)
	case FormatYAML:
		procs, err = parseYAML(r, name)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return finalize(procs, name)
}

func openProcessingFile(path string) (*os.File, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: opening process file: %v", model.ErrConfig, err)
	}
	closeFn := func() { _ = f.Close() }
	return f, closeFn, nil
}

// finalize numbers the processes in file order and checks them.
func finalize(procs []model.Process, name string) ([]model.Process, error) {
	if len(procs) == 0 {
		return nil, &model.LoadError{Path: name, Msg: "no processes found"}
	}
	seen := make(map[string]bool, len(procs))
	for i := range procs {
		procs[i].OriginalIndex = i
		if err := procs[i].Validate(); err != nil {
			return nil, &model.LoadError{Path: name, Msg: strings.TrimPrefix(err.Error(), model.ErrConfig.Error()+": ")}
		}
		if seen[procs[i].Name] {
			return nil, &model.LoadError{Path: name, Msg: fmt.Sprintf("duplicate process name %q", procs[i].Name)}
		}
		seen[procs[i].Name] = true
	}
	return procs, nil
}
