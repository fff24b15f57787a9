// Package ui holds the browse state machine and the pure rendering helpers
// shared by the HTML pages and the terminal browser.
package ui

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/abiiranathan/recordroom/database"
)

// ErrInvalidParam is returned for query parameters that cannot be used as a filter.
var ErrInvalidParam = errors.New("invalid parameter")

// Target selects which of the two record tables a state or link refers to.
type Target int

const (
	TargetTaluk Target = iota
	TargetVillage
)

func (t Target) String() string {
	if t == TargetVillage {
		return "village"
	}
	return "taluk"
}

// Limits returns the page size bounds of the target's endpoint.
func (t Target) Limits() database.Limits {
	if t == TargetVillage {
		return database.VillageLimits
	}
	return database.TalukLimits
}

// APIPath is the JSON endpoint serving the target.
func (t Target) APIPath() string {
	if t == TargetVillage {
		return "/village-data"
	}
	return "/taluk-data"
}

// BrowsePath is the HTML page browsing the target.
func (t Target) BrowsePath() string {
	if t == TargetVillage {
		return "/browse/village"
	}
	return "/browse/taluk"
}

// FilterState is the complete, immutable filter and page selection of one
// table. Zero codes and empty strings mean "All".
type FilterState struct {
	Target   Target
	Search   string
	Year     string
	Office   string
	Category string
	District int
	Taluk    int
	Hobli    int
	Village  int
	Page     int
	Limit    int
}

// NewFilterState returns the initial state of a target: no filters, first
// page, default page size.
func NewFilterState(t Target) FilterState {
	return FilterState{Target: t, Page: 1, Limit: t.Limits().Default}
}

// Normalize floors the page and clamps the limit into the endpoint's range.
func (s FilterState) Normalize() FilterState {
	s.Page = database.NormalizePage(s.Page)
	s.Limit = s.Target.Limits().Clamp(s.Limit)
	return s
}

// WithPage returns a copy of s on page p.
func (s FilterState) WithPage(p int) FilterState {
	s.Page = database.NormalizePage(p)
	return s
}

func (s FilterState) TalukQuery() database.TalukQuery {
	s = s.Normalize()
	return database.TalukQuery{
		Search: s.Search,
		Year:   s.Year,
		Office: s.Office,
		Page:   s.Page,
		Limit:  s.Limit,
	}
}

func (s FilterState) VillageQuery() database.VillageQuery {
	s = s.Normalize()
	return database.VillageQuery{
		Search:   s.Search,
		Category: s.Category,
		Year:     s.Year,
		District: s.District,
		Taluk:    s.Taluk,
		Hobli:    s.Hobli,
		Village:  s.Village,
		Page:     s.Page,
		Limit:    s.Limit,
	}
}

// Values encodes s as query parameters. Unset filters are omitted.
func (s FilterState) Values() url.Values {
	return s.values("")
}

// PrevValues encodes s under "prev_" keys. HTML forms echo them back so the
// server can tell which dropdown changed.
func (s FilterState) PrevValues() url.Values {
	return s.values(prevPrefix)
}

const prevPrefix = "prev_"

func (s FilterState) values(prefix string) url.Values {
	v := url.Values{}
	set := func(key, value string) {
		if value != "" {
			v.Set(prefix+key, value)
		}
	}
	setCode := func(key string, code int) {
		if code != 0 {
			v.Set(prefix+key, strconv.Itoa(code))
		}
	}

	set("search", s.Search)
	set("year", s.Year)
	if s.Target == TargetTaluk {
		set("office", s.Office)
	} else {
		set("category", s.Category)
		setCode("district", s.District)
		setCode("taluk", s.Taluk)
		setCode("hobli", s.Hobli)
		setCode("village", s.Village)
	}
	v.Set(prefix+"page", strconv.Itoa(s.Page))
	v.Set(prefix+"limit", strconv.Itoa(s.Limit))
	return v
}

// ParseFilterState reads a target's state from query parameters. Missing
// page and limit take their defaults, unparseable ones behave as 0 and are
// then floored or clamped. A non-integer code is an ErrInvalidParam.
func ParseFilterState(t Target, v url.Values) (FilterState, error) {
	return parseState(t, v, "")
}

// ParseForm reads the submitted state and the state the form was rendered
// with, and reconciles them so that dropdown cascades apply.
func ParseForm(t Target, v url.Values) (FilterState, error) {
	next, err := parseState(t, v, "")
	if err != nil {
		return FilterState{}, err
	}
	if v.Get(prevPrefix+"page") == "" {
		return next, nil
	}

	prev, err := parseState(t, v, prevPrefix)
	if err != nil {
		return FilterState{}, err
	}
	return Reconcile(prev, next), nil
}

func parseState(t Target, v url.Values, prefix string) (FilterState, error) {
	get := func(key string) string {
		return strings.TrimSpace(v.Get(prefix + key))
	}

	s := NewFilterState(t)
	s.Search = get("search")
	s.Year = get("year")
	s.Page = intParam(get("page"), 1)
	s.Limit = intParam(get("limit"), t.Limits().Default)

	if t == TargetTaluk {
		s.Office = get("office")
		return s.Normalize(), nil
	}

	s.Category = get("category")
	if strings.EqualFold(s.Category, CategoryAll) {
		s.Category = ""
	}

	codes := []struct {
		key string
		dst *int
	}{
		{"district", &s.District},
		{"taluk", &s.Taluk},
		{"hobli", &s.Hobli},
		{"village", &s.Village},
	}
	for _, c := range codes {
		raw := get(c.key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return FilterState{}, fmt.Errorf("%w: %s=%q", ErrInvalidParam, c.key, raw)
		}
		*c.dst = n
	}
	return s.Normalize(), nil
}

// intParam parses like PHP's intval: missing takes def, garbage is 0.
func intParam(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
