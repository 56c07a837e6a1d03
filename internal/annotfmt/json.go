package annotfmt

import (
	"encoding/json"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"covannot/internal/annotate"
)

// Output is the root document of the json and msgpack formats.
type Output struct {
	Annotations []annotate.Annotation `json:"annotations"`
	Count       int                   `json:"count"`
	// Total is the number of annotations before Opts.Max was applied.
	Total int `json:"total"`
}

// BuildOutput assembles the document without serialising it.
func BuildOutput(anns []annotate.Annotation, opts Opts) Output {
	shown := opts.limit(anns)
	if shown == nil {
		shown = []annotate.Annotation{}
	}
	return Output{
		Annotations: shown,
		Count:       len(shown),
		Total:       len(anns),
	}
}

// JSON writes the annotations as an indented JSON document.
func JSON(w io.Writer, anns []annotate.Annotation, opts Opts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(BuildOutput(anns, opts))
}

// Msgpack writes the same document as JSON in msgpack encoding, reusing the
// json field names.
func Msgpack(w io.Writer, anns []annotate.Annotation, opts Opts) error {
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("json")
	return enc.Encode(BuildOutput(anns, opts))
}
