package export

import (
	"context"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// YAMLExporter writes the full report as one YAML document, the most
// faithful of the file formats.
type YAMLExporter struct {
	Path string
}

func (e *YAMLExporter) Name() string { return "yaml" }

func (e *YAMLExporter) Export(ctx context.Context, report *Report) error {
	f, err := os.Create(e.Path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", e.Path)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return eris.Wrap(err, "export: encode yaml")
	}
	return eris.Wrap(enc.Close(), "export: close yaml encoder")
}
