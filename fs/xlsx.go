package fs

import (
	"io"

	"github.com/fwojciec/staffdir"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet that holds records in XLSX exports.
const SheetName = "Staff Data"

// DefaultXLSXPath is the file written when XLSX output has no explicit path.
const DefaultXLSXPath = "staff_data.xlsx"

func encodeXLSX(w io.Writer, sourceURL string, records []*staffdir.StaffRecord) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return err
	}

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, []any{r.Name, r.JobTitle, r.Email, sourceURL}); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}
