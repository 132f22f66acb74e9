package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/eos/internal/sweep"
)

type ExportData struct {
	Domain  string               `json:"domain"`
	Worst   string               `json:"worst"`
	Columns map[string][]float64 `json:"columns"`
	Codes   []string             `json:"codes"`
}

func exportData(res *sweep.Result) ExportData {
	data := ExportData{
		Domain:  res.Spec.Domain.String(),
		Worst:   res.Worst.String(),
		Columns: make(map[string][]float64, len(res.Inputs)+len(res.Outputs)),
		Codes:   make([]string, res.Errors.Len()),
	}
	for _, f := range res.Inputs {
		data.Columns[f.Name()] = f.Data()
	}
	for _, f := range res.Outputs {
		data.Columns[f.Name()] = f.Data()
	}
	for i := range data.Codes {
		data.Codes[i] = res.Errors.At(i).String()
	}
	return data
}

// WriteJSON encodes a sweep result to w.
func WriteJSON(w io.Writer, res *sweep.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exportData(res))
}

func ExportJSON(path string, res *sweep.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, res)
}
