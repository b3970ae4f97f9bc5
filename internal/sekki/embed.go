package sekki

import (
	_ "embed"
	"log/slog"
)

//go:embed data/sekki_jst_1900_2100.json
var embeddedData []byte

// EmbeddedPath labels the built-in data set in logs and reports.
const EmbeddedPath = "embedded:sekki_jst_1900_2100.json"

// Embedded parses the data set compiled into the binary, covering
// 1900 through 2100.
func Embedded(logger *slog.Logger) (*FileSource, error) {
	src, err := Parse(embeddedData, logger)
	if err != nil {
		return nil, err
	}
	src.Path = EmbeddedPath
	return src, nil
}
