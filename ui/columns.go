package ui

import (
	"strconv"

	"github.com/abiiranathan/recordroom/database"
)

const (
	CategoryAll      = "All"
	CategoryFile     = "File"
	CategoryRegister = "Register"
)

// NotAvailable is shown for null columns.
const NotAvailable = "N/A"

// ColumnKey identifies a table column.
type ColumnKey int

const (
	ColSlNo ColumnKey = iota
	ColDistrict
	ColTaluk
	ColHobli
	ColVillage
	ColOffice
	ColFileNo
	ColVolumeNo
	ColSub
	ColYear
	ColCategory
	ColAction
)

// Column is one header cell.
type Column struct {
	Key   ColumnKey
	Title string
}

// Cell is one body cell. Badge names a style for badge cells; FileID is set
// on the action cell.
type Cell struct {
	Text   string
	Badge  string
	FileID int64
}

var columnTitles = map[ColumnKey]string{
	ColSlNo:     "Sl No",
	ColDistrict: "District",
	ColTaluk:    "Taluk",
	ColHobli:    "Hobli",
	ColVillage:  "Village",
	ColOffice:   "Office Name",
	ColFileNo:   "File No",
	ColVolumeNo: "Volume No",
	ColSub:      "Sub",
	ColYear:     "Year",
	ColCategory: "Category",
	ColAction:   "Action",
}

func columns(keys ...ColumnKey) []Column {
	cols := make([]Column, len(keys))
	for i, k := range keys {
		cols[i] = Column{Key: k, Title: columnTitles[k]}
	}
	return cols
}

// categoryColumns are the optional columns shown for category.
func categoryColumns(category string) []ColumnKey {
	switch category {
	case CategoryFile:
		return []ColumnKey{ColFileNo, ColSub}
	case CategoryRegister:
		return []ColumnKey{ColVolumeNo}
	default:
		return []ColumnKey{ColFileNo, ColVolumeNo, ColSub, ColCategory}
	}
}

// TalukColumns is the taluk office table layout for category.
func TalukColumns(category string) []Column {
	keys := []ColumnKey{ColSlNo, ColOffice}
	keys = append(keys, categoryColumns(category)...)
	keys = append(keys, ColYear, ColAction)
	return columns(keys...)
}

// VillageColumns is the village table layout for category.
func VillageColumns(category string) []Column {
	keys := []ColumnKey{ColSlNo, ColDistrict, ColTaluk, ColHobli, ColVillage, ColOffice}
	keys = append(keys, categoryColumns(category)...)
	keys = append(keys, ColYear, ColAction)
	return columns(keys...)
}

func optional(s *string) string {
	if s == nil || *s == "" {
		return NotAvailable
	}
	return *s
}

func required(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}

// TalukCells renders r in the order of cols.
func TalukCells(r database.TalukRecord, cols []Column) []Cell {
	cells := make([]Cell, len(cols))
	for i, col := range cols {
		switch col.Key {
		case ColSlNo:
			cells[i] = Cell{Text: strconv.Itoa(r.SlNo)}
		case ColOffice:
			cells[i] = Cell{Text: required(r.OfficeName)}
		case ColFileNo:
			cells[i] = Cell{Text: required(r.FileNo), Badge: "file"}
		case ColVolumeNo:
			cells[i] = Cell{Text: optional(r.VolumeNo)}
		case ColSub:
			cells[i] = Cell{Text: required(r.Sub)}
		case ColYear:
			cells[i] = Cell{Text: required(r.Year)}
		case ColCategory:
			cells[i] = Cell{Text: required(r.Category), Badge: "category"}
		case ColAction:
			cells[i] = Cell{Text: "View", FileID: r.FileID}
		default:
			cells[i] = Cell{Text: NotAvailable}
		}
	}
	return cells
}

// VillageCells renders r in the order of cols with codes resolved by names.
func VillageCells(r database.VillageRecord, names Names, cols []Column) []Cell {
	cells := make([]Cell, len(cols))
	for i, col := range cols {
		switch col.Key {
		case ColSlNo:
			cells[i] = Cell{Text: strconv.Itoa(r.SlNo)}
		case ColDistrict:
			cells[i] = Cell{Text: names.District, Badge: "district"}
		case ColTaluk:
			cells[i] = Cell{Text: names.Taluk, Badge: "taluk"}
		case ColHobli:
			cells[i] = Cell{Text: names.Hobli, Badge: "hobli"}
		case ColVillage:
			cells[i] = Cell{Text: names.Village, Badge: "village"}
		case ColOffice:
			cells[i] = Cell{Text: required(r.OfficeName)}
		case ColFileNo:
			cells[i] = Cell{Text: optional(r.FileNo), Badge: "file"}
		case ColVolumeNo:
			cells[i] = Cell{Text: optional(r.VolumeNo)}
		case ColSub:
			cells[i] = Cell{Text: optional(r.Sub)}
		case ColYear:
			cells[i] = Cell{Text: required(r.Year)}
		case ColCategory:
			cells[i] = Cell{Text: required(r.Category), Badge: "category"}
		case ColAction:
			cells[i] = Cell{Text: "View", FileID: r.FileID}
		default:
			cells[i] = Cell{Text: NotAvailable}
		}
	}
	return cells
}
