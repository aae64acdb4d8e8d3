package app

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	domaintypes "lcforge/internal/domain/types"
)

// ReadCSV loads a light curve from a CSV file with time,flux[,flux_err]
// columns. A non-numeric first row is treated as a header and skipped. This
// is a CLI convenience, not a persistence format.
func ReadCSV(path string) (domaintypes.LightCurve, error) {
	f, err := os.Open(path)
	if err != nil {
		return domaintypes.LightCurve{}, fmt.Errorf("open light curve: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var lc domaintypes.LightCurve
	row := 0
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return domaintypes.LightCurve{}, fmt.Errorf("read %s: %w", path, err)
		}
		row++
		if len(rec) < 2 {
			return domaintypes.LightCurve{}, fmt.Errorf("%s row %d: need at least time and flux", path, row)
		}

		t, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			if row == 1 {
				continue // header
			}
			return domaintypes.LightCurve{}, fmt.Errorf("%s row %d: bad time %q", path, row, rec[0])
		}
		fl, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return domaintypes.LightCurve{}, fmt.Errorf("%s row %d: bad flux %q", path, row, rec[1])
		}

		lc.Time = append(lc.Time, t)
		lc.Flux = append(lc.Flux, fl)
		if len(rec) > 2 {
			fe, err := strconv.ParseFloat(rec[2], 64)
			if err != nil {
				return domaintypes.LightCurve{}, fmt.Errorf("%s row %d: bad flux_err %q", path, row, rec[2])
			}
			lc.FluxErr = append(lc.FluxErr, fe)
		}
	}

	if lc.Len() == 0 {
		return domaintypes.LightCurve{}, fmt.Errorf("%s: no cadences", path)
	}
	if !lc.Aligned() {
		return domaintypes.LightCurve{}, fmt.Errorf("%s: flux_err present for only some rows", path)
	}
	return lc, nil
}

// WriteCSV writes a light curve as time,flux[,flux_err] rows.
func WriteCSV(w io.Writer, lc domaintypes.LightCurve) error {
	cw := csv.NewWriter(w)
	header := []string{"time", "flux"}
	if lc.FluxErr != nil {
		header = append(header, "flux_err")
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := 0; i < lc.Len(); i++ {
		rec := []string{
			strconv.FormatFloat(lc.Time[i], 'g', -1, 64),
			strconv.FormatFloat(lc.Flux[i], 'g', -1, 64),
		}
		if lc.FluxErr != nil {
			rec = append(rec, strconv.FormatFloat(lc.FluxErr[i], 'g', -1, 64))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
