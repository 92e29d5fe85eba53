package config

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Formats lists the file formats WriteDefaults supports.
var Formats = []string{"toml", "yaml", "json"}

// FormatFromPath picks the output format from a file extension.
func FormatFromPath(path string) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "yml" {
		return "yaml"
	}
	return ext
}

// WriteDefaults writes the compiled-in defaults to w in format. Durations
// are written as strings such as "30s".
func WriteDefaults(w io.Writer, format string) error {
	doc := make(map[string]any)
	for section, keys := range defaults() {
		values := make(map[string]any, len(keys))
		for k, v := range keys {
			if d, ok := v.(time.Duration); ok {
				v = d.String()
			}
			values[k] = v
		}
		doc[section] = values
	}
	for k, v := range topLevelDefaults {
		doc[k] = v
	}

	var (
		b   []byte
		err error
	)
	switch format {
	case "toml":
		b, err = toml.Marshal(doc)
	case "yaml":
		b, err = yaml.Marshal(doc)
	case "json":
		b, err = json.MarshalIndent(doc, "", "  ")
		b = append(b, '\n')
	default:
		return fmt.Errorf("unsupported config format %q, want one of %s", format, strings.Join(Formats, ", "))
	}
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
