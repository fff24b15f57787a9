package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strconv"

	"github.com/abiiranathan/recordroom/database"
)

//go:embed all:templates
var templatesFS embed.FS

// Renderer draws the HTML pages.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("unable to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Page is the data of one full HTML page.
type Page struct {
	Section   Section
	Sections  []Section
	Table     TableView
	Prev      url.Values
	PageSizes []Option
	Taluk     TalukDropdowns
	Village   VillageDropdowns
}

var pageSizes = map[Target][]int{
	TargetTaluk:   {10, 20, 50, 100},
	TargetVillage: {25, 50, 100, 250, 500},
}

func pageSizeOptions(s FilterState) []Option {
	opts := []Option{}
	for _, n := range pageSizes[s.Target] {
		opts = append(opts, Option{Value: strconv.Itoa(n), Label: strconv.Itoa(n), Selected: n == s.Limit})
	}
	return opts
}

// HomePage is the landing page with no table.
func HomePage(sec Section) Page {
	return Page{Section: sec, Sections: AllSections}
}

// TalukPage builds the taluk office page. errMsg marks page as placeholder data.
func TalukPage(s FilterState, data database.TalukPage, errMsg string) Page {
	table := TalukTable(s, data)
	table.Error = errMsg
	return Page{
		Section:   SectionTaluk,
		Sections:  AllSections,
		Table:     table,
		Prev:      s.PrevValues(),
		PageSizes: pageSizeOptions(s),
		Taluk:     BuildTalukDropdowns(data.Filters, s),
	}
}

// VillagePage builds the village data page. errMsg marks page as placeholder data.
func VillagePage(s FilterState, data database.VillagePage, errMsg string) Page {
	table := VillageTable(s, data)
	table.Error = errMsg
	return Page{
		Section:   SectionVillage,
		Sections:  AllSections,
		Table:     table,
		Prev:      s.PrevValues(),
		PageSizes: pageSizeOptions(s),
		Village:   BuildVillageDropdowns(NewCodeTable(data.VillageCodes), data.Filters, s),
	}
}

// Render writes the page through its section's template.
func (r *Renderer) Render(w io.Writer, p Page) error {
	name := "index.html"
	switch p.Section {
	case SectionTaluk:
		name = "taluk.html"
	case SectionVillage:
		name = "village.html"
	case SectionOthers:
		name = "others.html"
	}
	return r.tmpl.ExecuteTemplate(w, name, p)
}

// RenderTable writes only the table fragment of v.
func (r *Renderer) RenderTable(w io.Writer, v TableView) error {
	return r.tmpl.ExecuteTemplate(w, "table", v)
}
