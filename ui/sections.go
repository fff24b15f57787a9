package ui

// Section is one of the navigation panes. Exactly one is visible.
type Section string

const (
	SectionHome    Section = "home"
	SectionTaluk   Section = "taluk-data"
	SectionVillage Section = "village-data"
	SectionOthers  Section = "others"
)

// AllSections in navigation order.
var AllSections = []Section{SectionHome, SectionTaluk, SectionVillage, SectionOthers}

// Title is the navigation label of s.
func (s Section) Title() string {
	switch s {
	case SectionTaluk:
		return "Taluk Office Data"
	case SectionVillage:
		return "Village Data"
	case SectionOthers:
		return "Others"
	default:
		return "Home"
	}
}

// Path is the HTML page of s.
func (s Section) Path() string {
	switch s {
	case SectionTaluk:
		return TargetTaluk.BrowsePath()
	case SectionVillage:
		return TargetVillage.BrowsePath()
	case SectionOthers:
		return "/others"
	default:
		return "/"
	}
}

// Target returns the table shown in s, if any.
func (s Section) Target() (Target, bool) {
	switch s {
	case SectionTaluk:
		return TargetTaluk, true
	case SectionVillage:
		return TargetVillage, true
	}
	return 0, false
}

// Sections tracks the visible section and which data sections have been
// loaded. The zero value shows home with nothing loaded.
type Sections struct {
	current Section
	loaded  map[Section]bool
}

func (s Sections) Current() Section {
	if s.current == "" {
		return SectionHome
	}
	return s.current
}

// Visible reports whether sec is the one shown.
func (s Sections) Visible(sec Section) bool {
	return s.Current() == sec
}

// Show makes sec the visible section. The returned flag is true the first
// time a data section is shown and its data has to be loaded. Unknown
// sections leave the state unchanged.
func (s Sections) Show(sec Section) (Sections, bool) {
	known := false
	for _, k := range AllSections {
		if k == sec {
			known = true
			break
		}
	}
	if !known {
		return s, false
	}

	s.current = sec
	_, isData := sec.Target()
	return s, isData && !s.loaded[sec]
}

// MarkLoaded records that sec has data.
func (s Sections) MarkLoaded(sec Section) Sections {
	loaded := make(map[Section]bool, len(s.loaded)+1)
	for k, v := range s.loaded {
		loaded[k] = v
	}
	loaded[sec] = true
	s.loaded = loaded
	return s
}
