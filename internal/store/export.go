package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/KeenanFiedler/PHYS382-BridgeSimulation/internal/sim"
	"github.com/KeenanFiedler/PHYS382-BridgeSimulation/internal/truss"
)

var elementHeader = []string{
	"ID", "Material", "Yielded", "Broken",
	"Stress_Pa", "Strain", "Force_N", "Length_m", "Mass_kg",
	"Density", "Modulus_Pa", "Area_m2", "Yield_Pa", "Ultimate_Pa",
}

// WriteElementsCSV writes one row per element with its live mechanical
// state and material constants.
func WriteElementsCSV(out io.Writer, st *truss.Structure) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	if err := w.Write(elementHeader); err != nil {
		return err
	}

	for _, e := range st.Elements() {
		a, b := st.Endpoints(e)
		p := e.Material.Props()
		row := []string{
			strconv.Itoa(int(e.ID)),
			e.Material.String(),
			strconv.FormatBool(e.Yielded),
			strconv.FormatBool(e.Broken),
			fmtFloat(e.Stress(a.Pos, b.Pos)),
			fmtFloat(e.Strain(a.Pos, b.Pos)),
			fmtFloat(e.AxialForce(a.Pos, b.Pos)),
			fmtFloat(st.CurrentLength(e)),
			fmtFloat(e.Mass()),
			fmtFloat(p.LinearDensity),
			fmtFloat(p.YoungsModulus),
			fmtFloat(p.Area),
			fmtFloat(p.YieldStrength),
			fmtFloat(p.UltimateStrength),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

// WriteSeriesCSV writes one row per recorded tick: the time column plus
// one stress column per element, or a single displacement column.
func WriteSeriesCSV(out io.Writer, series sim.Series) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	header := []string{"time"}
	switch series.Mode {
	case sim.ModeStress:
		for _, id := range series.ElementIDs {
			header = append(header, fmt.Sprintf("stress_e%d", id))
		}
	case sim.ModeDisplacement:
		header = append(header, fmt.Sprintf("displacement_n%d", series.Node))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, sample := range series.Samples {
		row := make([]string, 0, len(sample)+1)
		row = append(row, fmtFloat(series.Times[i]))
		for _, v := range sample {
			row = append(row, fmtFloat(v))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

// ExportJSONStdout dumps run metadata and the recorded series as
// indented JSON.
func ExportJSONStdout(meta *RunMetadata, header []string, times []float64, samples [][]float64) error {
	data := struct {
		RunMetadata
		Columns []string    `json:"columns,omitempty"`
		Times   []float64   `json:"times,omitempty"`
		Samples [][]float64 `json:"samples,omitempty"`
	}{
		RunMetadata: *meta,
		Columns:     header,
		Times:       times,
		Samples:     samples,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 9, 64)
}
