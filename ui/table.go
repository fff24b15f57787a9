package ui

import (
	"strconv"

	"github.com/abiiranathan/recordroom/database"
)

// TableStatus is what the table body shows.
type TableStatus int

const (
	StatusRows TableStatus = iota
	StatusEmpty
	StatusLoading
)

// TableView is everything needed to draw one results table. Header and body
// cells come from the same Columns so their counts always match.
type TableView struct {
	State      FilterState
	Columns    []Column
	Rows       [][]Cell
	Status     TableStatus
	Pagination database.Pagination
	Links      []PageLink

	// Error is set when the rows are placeholders for data that failed to load.
	Error string
}

// ColSpan is the width of full-row messages.
func (v TableView) ColSpan() int {
	return len(v.Columns)
}

func (v TableView) Loading() bool { return v.Status == StatusLoading }

func (v TableView) Empty() bool { return v.Status == StatusEmpty }

// PageURL links to page p of the same filters.
func (v TableView) PageURL(p int) string {
	s := v.State.WithPage(p)
	return s.Target.BrowsePath() + "?" + s.Values().Encode()
}

// RetryURL reloads the current state.
func (v TableView) RetryURL() string {
	return v.PageURL(v.State.Page)
}

// Summary describes the visible row range, e.g. "Showing 1-20 of 45".
func (v TableView) Summary() string {
	p := v.Pagination
	if p.Total == 0 || len(v.Rows) == 0 {
		return "No records"
	}
	first := database.Offset(p.Page, p.Limit) + 1
	last := first + len(v.Rows) - 1
	return "Showing " + strconv.Itoa(first) + "-" + strconv.Itoa(last) + " of " + strconv.Itoa(p.Total)
}

func columnsFor(s FilterState) []Column {
	if s.Target == TargetVillage {
		return VillageColumns(s.Category)
	}
	return TalukColumns(s.Category)
}

// LoadingTable is shown while the first page of s is being fetched.
func LoadingTable(s FilterState) TableView {
	return TableView{State: s, Columns: columnsFor(s), Status: StatusLoading}
}

// TalukTable lays out page for state s.
func TalukTable(s FilterState, page database.TalukPage) TableView {
	v := TableView{State: s, Columns: columnsFor(s), Pagination: page.Pagination}
	for _, r := range page.Data {
		v.Rows = append(v.Rows, TalukCells(r, v.Columns))
	}
	return v.finish()
}

// VillageTable lays out page for state s, resolving codes through the
// page's lookup table.
func VillageTable(s FilterState, page database.VillagePage) TableView {
	codes := NewCodeTable(page.VillageCodes)
	v := TableView{State: s, Columns: columnsFor(s), Pagination: page.Pagination}
	for _, r := range page.Data {
		v.Rows = append(v.Rows, VillageCells(r, codes.Resolve(r), v.Columns))
	}
	return v.finish()
}

func (v TableView) finish() TableView {
	if len(v.Rows) == 0 {
		v.Status = StatusEmpty
	}
	v.Links = Paginate(v.State.Target, v.Pagination.Page, v.Pagination.Pages)
	return v
}
