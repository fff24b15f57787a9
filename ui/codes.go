package ui

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"

	"github.com/abiiranathan/recordroom/database"
)

// CodeTable resolves hierarchy codes to names. Each level is keyed by the
// full code path down to it, so a taluk code only resolves inside its district.
type CodeTable struct {
	districts map[int]string
	taluks    map[[2]int]string
	hoblis    map[[3]int]string
	villages  map[[4]int]string
	rows      []database.CodeLookupRow
}

// NewCodeTable indexes rows. A nil or empty slice yields a table on which
// every lookup falls back to the raw code.
func NewCodeTable(rows []database.CodeLookupRow) *CodeTable {
	c := &CodeTable{
		districts: make(map[int]string),
		taluks:    make(map[[2]int]string),
		hoblis:    make(map[[3]int]string),
		villages:  make(map[[4]int]string),
		rows:      rows,
	}
	for _, r := range rows {
		c.districts[r.DistrictCode] = r.DistrictName
		c.taluks[[2]int{r.DistrictCode, r.TalukCode}] = r.TalukName
		c.hoblis[[3]int{r.DistrictCode, r.TalukCode, r.HobliCode}] = r.HobliName
		c.villages[[4]int{r.DistrictCode, r.TalukCode, r.HobliCode, r.VillageCode}] = r.VillageName
	}
	return c
}

// Empty reports whether the lookup table carried no rows.
func (c *CodeTable) Empty() bool {
	return len(c.rows) == 0
}

func fallbackName(level string, code int) string {
	return fmt.Sprintf("%s %d", level, code)
}

func (c *CodeTable) DistrictName(district int) string {
	if name, ok := c.districts[district]; ok && name != "" {
		return name
	}
	return fallbackName("District", district)
}

func (c *CodeTable) TalukName(district, taluk int) string {
	if name, ok := c.taluks[[2]int{district, taluk}]; ok && name != "" {
		return name
	}
	return fallbackName("Taluk", taluk)
}

func (c *CodeTable) HobliName(district, taluk, hobli int) string {
	if name, ok := c.hoblis[[3]int{district, taluk, hobli}]; ok && name != "" {
		return name
	}
	return fallbackName("Hobli", hobli)
}

func (c *CodeTable) VillageName(district, taluk, hobli, village int) string {
	if name, ok := c.villages[[4]int{district, taluk, hobli, village}]; ok && name != "" {
		return name
	}
	return fallbackName("Village", village)
}

// Names holds the resolved hierarchy of one record.
type Names struct {
	District string
	Taluk    string
	Hobli    string
	Village  string
}

// Resolve translates the codes of r. Each level falls back on its own.
func (c *CodeTable) Resolve(r database.VillageRecord) Names {
	return Names{
		District: c.DistrictName(r.DistrictCode),
		Taluk:    c.TalukName(r.DistrictCode, r.TalukCode),
		Hobli:    c.HobliName(r.DistrictCode, r.TalukCode, r.HobliCode),
		Village:  c.VillageName(r.DistrictCode, r.TalukCode, r.HobliCode, r.VillageCode),
	}
}

// Option is one entry of a dropdown.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Dropdown is a labelled select control. The first option is always "All".
type Dropdown struct {
	Name     string
	Options  []Option
	Disabled bool
}

// VillageDropdowns are the select controls of the village section.
type VillageDropdowns struct {
	District Dropdown
	Taluk    Dropdown
	Hobli    Dropdown
	Village  Dropdown
	Year     Dropdown
	Category Dropdown
}

// BuildVillageDropdowns scopes every hierarchy level to the selections above
// it using the lookup table. Without lookup rows, or while a parent level is
// unset, the level lists the server's distinct codes by their raw labels.
func BuildVillageDropdowns(codes *CodeTable, filters database.VillageFilters, s FilterState) VillageDropdowns {
	d := VillageDropdowns{
		District: Dropdown{Name: "district", Options: []Option{{Value: "", Label: "All Districts"}}},
		Taluk:    Dropdown{Name: "taluk", Options: []Option{{Value: "", Label: "All Taluks"}}},
		Hobli:    Dropdown{Name: "hobli", Options: []Option{{Value: "", Label: "All Hoblis"}}},
		Village:  Dropdown{Name: "village", Options: []Option{{Value: "", Label: "All Villages"}}},
		Year:     stringDropdown("year", "All Years", filters.Years, s.Year),
		Category: stringDropdown("category", "All Categories", filters.Categories, s.Category),
	}

	if codes.Empty() {
		d.District.Options = append(d.District.Options, codeOptions(filters.Districts, "District", s.District)...)
		d.Taluk.Options = append(d.Taluk.Options, codeOptions(filters.Taluks, "Taluk", s.Taluk)...)
		d.Hobli.Options = append(d.Hobli.Options, codeOptions(filters.Hoblis, "Hobli", s.Hobli)...)
		d.Village.Options = append(d.Village.Options, codeOptions(filters.Villages, "Village", s.Village)...)
		return d
	}

	var districts, taluks, hoblis, villages []namedCode
	for _, r := range codes.rows {
		districts = append(districts, namedCode{r.DistrictCode, r.DistrictName})
		if s.District == 0 || r.DistrictCode != s.District {
			continue
		}
		taluks = append(taluks, namedCode{r.TalukCode, r.TalukName})
		if s.Taluk == 0 || r.TalukCode != s.Taluk {
			continue
		}
		hoblis = append(hoblis, namedCode{r.HobliCode, r.HobliName})
		if s.Hobli == 0 || r.HobliCode != s.Hobli {
			continue
		}
		villages = append(villages, namedCode{r.VillageCode, r.VillageName})
	}

	d.District.Options = append(d.District.Options, namedOptions(districts, s.District)...)

	if s.District == 0 {
		d.Taluk.Options = append(d.Taluk.Options, codeOptions(filters.Taluks, "Taluk", s.Taluk)...)
	} else {
		d.Taluk.Options = append(d.Taluk.Options, namedOptions(taluks, s.Taluk)...)
	}

	// Hobli and village codes are only meaningful inside their parents.
	d.Hobli.Disabled = s.Taluk == 0 || s.District == 0
	if !d.Hobli.Disabled {
		d.Hobli.Options = append(d.Hobli.Options, namedOptions(hoblis, s.Hobli)...)
	}
	d.Village.Disabled = d.Hobli.Disabled || s.Hobli == 0
	if !d.Village.Disabled {
		d.Village.Options = append(d.Village.Options, namedOptions(villages, s.Village)...)
	}
	return d
}

// TalukDropdowns are the select controls of the taluk office section.
type TalukDropdowns struct {
	Year   Dropdown
	Office Dropdown
}

func BuildTalukDropdowns(filters database.TalukFilters, s FilterState) TalukDropdowns {
	return TalukDropdowns{
		Year:   stringDropdown("year", "All Years", filters.Years, s.Year),
		Office: stringDropdown("office", "All Offices", filters.Offices, s.Office),
	}
}

type namedCode struct {
	code int
	name string
}

func namedOptions(codes []namedCode, selected int) []Option {
	slices.SortFunc(codes, func(a, b namedCode) int { return cmp.Compare(a.code, b.code) })
	codes = slices.CompactFunc(codes, func(a, b namedCode) bool { return a.code == b.code })

	opts := make([]Option, 0, len(codes))
	for _, c := range codes {
		label := c.name
		if label == "" {
			label = strconv.Itoa(c.code)
		}
		opts = append(opts, Option{Value: strconv.Itoa(c.code), Label: label, Selected: c.code == selected})
	}
	return opts
}

func codeOptions(codes []int, level string, selected int) []Option {
	opts := make([]Option, 0, len(codes))
	for _, code := range codes {
		opts = append(opts, Option{
			Value:    strconv.Itoa(code),
			Label:    fallbackName(level, code),
			Selected: code == selected,
		})
	}
	return opts
}

func stringDropdown(name, all string, values []string, selected string) Dropdown {
	d := Dropdown{Name: name, Options: []Option{{Value: "", Label: all}}}
	for _, v := range values {
		d.Options = append(d.Options, Option{Value: v, Label: v, Selected: v == selected})
	}
	return d
}

// Current is the selected option, or "All" when nothing is selected.
func (d Dropdown) Current() Option {
	for _, o := range d.Options {
		if o.Selected {
			return o
		}
	}
	if len(d.Options) == 0 {
		return Option{Label: CategoryAll}
	}
	return d.Options[0]
}

// Next returns the option after the selected one, wrapping to "All". It
// reports false for disabled dropdowns and dropdowns with a single option.
func (d Dropdown) Next() (Option, bool) {
	if d.Disabled || len(d.Options) < 2 {
		return Option{}, false
	}
	i := 0
	for j, o := range d.Options {
		if o.Selected {
			i = j
			break
		}
	}
	return d.Options[(i+1)%len(d.Options)], true
}
