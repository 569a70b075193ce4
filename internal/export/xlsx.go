package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/meishiscan/cardscan/internal/card"
)

const sheetName = "Cards"

// CardsXLSX returns an XLSX workbook with a header row and one row per card.
func CardsXLSX(cards []card.Card) ([]byte, error) {
	f := excelize.NewFile()
	if index, _ := f.GetSheetIndex(sheetName); index == -1 {
		if _, err := f.NewSheet(sheetName); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(activeIndex)

	for i, h := range Headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheetName, cell, h)
	}

	for r, c := range cards {
		for col, v := range Row(c) {
			cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 20) // name
	_ = f.SetColWidth(sheetName, "D", "F", 24) // email, phones
	_ = f.SetColWidth(sheetName, "H", "H", 40) // address
	_ = f.SetColWidth(sheetName, "I", "M", 28) // web presence
	_ = f.SetColWidth(sheetName, "Q", "T", 36) // context and notes

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
