package database

import (
	"strings"
)

const (
	talukTable   = "talukofficedata"
	villageTable = "villagedata"
	codesTable   = "village_codes"
)

// Columns selected for each table, in scan order.
const (
	talukColumns = "Sl_No, Office_Name, File_No, Sub, Year, `data-category`, Volume_No, " +
		"file_id, office_code, File_Name, No_OF_Records_Extracted"

	villageColumns = "Sl_No, district_code, taluk_code, hobli_code, village_code, Office_Name, " +
		"File_No, Volume_No, Sub, Year, `data-category`, file_id, office_code, File_Name, " +
		"No_OF_Records_Extracted"

	codeColumns = "district_code, district_name, taluk_code, taluk_name, " +
		"hobli_code, hobli_name, village_code, village_name"
)

// Filters accepted by the taluk office endpoint. Empty strings are unset.
type TalukQuery struct {
	Search string
	Year   string
	Office string
	Page   int
	Limit  int
}

// Filters accepted by the village endpoint. Empty strings and zero codes are unset.
type VillageQuery struct {
	Search   string
	Category string
	Year     string
	District int
	Taluk    int
	Hobli    int
	Village  int
	Page     int
	Limit    int
}

// Statement is a count query and a paged data query sharing one predicate.
type Statement struct {
	Count     string
	CountArgs []any
	Data      string
	DataArgs  []any
}

// where accumulates conjunctive conditions and their positional arguments.
type where struct {
	conds []string
	args  []any
}

func (w *where) eq(column string, value any) {
	w.conds = append(w.conds, column+" = ?")
	w.args = append(w.args, value)
}

// contains adds one OR group matching term as a case-insensitive substring
// of any of the columns.
func (w *where) contains(term string, columns ...string) {
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = "LOWER(" + col + ") LIKE ? ESCAPE '!'"
		w.args = append(w.args, pattern)
	}
	w.conds = append(w.conds, "("+strings.Join(parts, " OR ")+")")
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func paged(table, columns string, w *where, limit, offset int) Statement {
	clause := w.String()

	dataArgs := make([]any, 0, len(w.args)+2)
	dataArgs = append(dataArgs, w.args...)
	dataArgs = append(dataArgs, limit, offset)

	return Statement{
		Count:     "SELECT COUNT(*) FROM " + table + clause,
		CountArgs: w.args,
		Data:      "SELECT " + columns + " FROM " + table + clause + " ORDER BY Sl_No ASC LIMIT ? OFFSET ?",
		DataArgs:  dataArgs,
	}
}

// BuildTalukQuery returns the statements for q. Page and limit are expected
// to be normalized already.
func BuildTalukQuery(q TalukQuery) Statement {
	w := &where{}
	if q.Search != "" {
		w.contains(q.Search, "Office_Name", "File_No", "Sub")
	}
	if q.Year != "" {
		w.eq("Year", q.Year)
	}
	if q.Office != "" {
		w.eq("Office_Name", q.Office)
	}
	return paged(talukTable, talukColumns, w, q.Limit, Offset(q.Page, q.Limit))
}

// BuildVillageQuery returns the statements for q. Each code is matched on its
// own column; a taluk code is not scoped to a district unless both are set.
func BuildVillageQuery(q VillageQuery) Statement {
	w := &where{}
	if q.Search != "" {
		w.contains(q.Search, "Office_Name", "File_No", "Sub", "Volume_No")
	}
	if q.Category != "" {
		w.eq("`data-category`", q.Category)
	}
	if q.District != 0 {
		w.eq("district_code", q.District)
	}
	if q.Taluk != 0 {
		w.eq("taluk_code", q.Taluk)
	}
	if q.Hobli != 0 {
		w.eq("hobli_code", q.Hobli)
	}
	if q.Village != 0 {
		w.eq("village_code", q.Village)
	}
	if q.Year != "" {
		w.eq("Year", q.Year)
	}
	return paged(villageTable, villageColumns, w, q.Limit, Offset(q.Page, q.Limit))
}

const (
	talukFiltersQuery = "SELECT DISTINCT Year, Office_Name FROM " + talukTable +
		" ORDER BY Year DESC, Office_Name ASC"

	villageFiltersQuery = "SELECT DISTINCT district_code, taluk_code, hobli_code, village_code, Year, `data-category` FROM " +
		villageTable + " ORDER BY district_code ASC, taluk_code ASC, hobli_code ASC, village_code ASC"

	codesQuery = "SELECT " + codeColumns + " FROM " + codesTable +
		" ORDER BY district_code ASC, taluk_code ASC, hobli_code ASC, village_code ASC"
)
