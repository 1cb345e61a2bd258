package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"math"
	"strconv"

	"github.com/san-kum/predsim/internal/dynamo"
)

// Value is a sample value that survives JSON encoding when it is not
// finite. NaN and the infinities are written as the strings "NaN", "+Inf"
// and "-Inf", the same text series.csv holds.
type Value float64

func (v Value) MarshalJSON() ([]byte, error) {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return json.Marshal(formatFloat(f))
	}
	return []byte(formatFloat(f)), nil
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*v = Value(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Value(f)
	return nil
}

func values(fs []float64) []Value {
	out := make([]Value, len(fs))
	for i, f := range fs {
		out[i] = Value(f)
	}
	return out
}

type ExportData struct {
	Run       RunMetadata `json:"run"`
	Times     []Value     `json:"times"`
	Predators []Value     `json:"predators"`
	Prey      []Value     `json:"prey"`
}

func ExportJSON(w io.Writer, meta *RunMetadata, ts *dynamo.TimeSeries) error {
	data := ExportData{
		Run:       *meta,
		Times:     values(ts.Times),
		Predators: values(ts.Predators.Values),
		Prey:      values(ts.Prey.Values),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteCSV writes a time,predators,prey table headed by the series labels.
func WriteCSV(w io.Writer, ts *dynamo.TimeSeries) error {
	cw := csv.NewWriter(w)

	predLabel, preyLabel := ts.Predators.Label, ts.Prey.Label
	if predLabel == "" {
		predLabel = "predators"
	}
	if preyLabel == "" {
		preyLabel = "prey"
	}
	if err := cw.Write([]string{"time", predLabel, preyLabel}); err != nil {
		return err
	}

	for i := 0; i < ts.Len(); i++ {
		row := []string{
			formatFloat(ts.Times[i]),
			formatFloat(ts.Predators.Values[i]),
			formatFloat(ts.Prey.Values[i]),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
