package ui

// Event is a user action on the filter controls.
type Event interface {
	apply(FilterState) FilterState
}

type (
	DistrictChanged struct{ Code int }
	TalukChanged    struct{ Code int }
	HobliChanged    struct{ Code int }
	VillageChanged  struct{ Code int }
	YearChanged     struct{ Year string }
	OfficeChanged   struct{ Office string }
	CategoryChanged struct{ Category string }
	SearchChanged   struct{ Text string }
	PageSizeChanged struct{ Limit int }
	PageChanged     struct{ Page int }
)

// A district owns its taluks, hoblis and villages, so every level below the
// changed one is cleared.
func (e DistrictChanged) apply(s FilterState) FilterState {
	s.District = e.Code
	s.Taluk, s.Hobli, s.Village = 0, 0, 0
	return s
}

func (e TalukChanged) apply(s FilterState) FilterState {
	s.Taluk = e.Code
	s.Hobli, s.Village = 0, 0
	return s
}

func (e HobliChanged) apply(s FilterState) FilterState {
	s.Hobli = e.Code
	s.Village = 0
	return s
}

func (e VillageChanged) apply(s FilterState) FilterState {
	s.Village = e.Code
	return s
}

func (e YearChanged) apply(s FilterState) FilterState {
	s.Year = e.Year
	return s
}

func (e OfficeChanged) apply(s FilterState) FilterState {
	s.Office = e.Office
	return s
}

func (e CategoryChanged) apply(s FilterState) FilterState {
	s.Category = e.Category
	if s.Category == CategoryAll {
		s.Category = ""
	}
	return s
}

func (e SearchChanged) apply(s FilterState) FilterState {
	s.Search = e.Text
	return s
}

func (e PageSizeChanged) apply(s FilterState) FilterState {
	s.Limit = s.Target.Limits().Clamp(e.Limit)
	return s
}

func (e PageChanged) apply(s FilterState) FilterState {
	return s.WithPage(e.Page)
}

// Apply returns the state after e. Every event except PageChanged is a
// filter mutation and sends the state back to page 1.
func Apply(s FilterState, e Event) FilterState {
	next := e.apply(s)
	if _, ok := e.(PageChanged); !ok {
		next.Page = 1
	}
	return next
}

// Reconcile computes the state reached from prev when a form submits next
// in one go. Only the highest changed level of the district hierarchy counts;
// stale lower selections carried by the form are dropped.
func Reconcile(prev, next FilterState) FilterState {
	var events []Event

	switch {
	case next.District != prev.District:
		events = append(events, DistrictChanged{next.District})
	case next.Taluk != prev.Taluk:
		events = append(events, TalukChanged{next.Taluk})
	case next.Hobli != prev.Hobli:
		events = append(events, HobliChanged{next.Hobli})
	case next.Village != prev.Village:
		events = append(events, VillageChanged{next.Village})
	}

	if next.Year != prev.Year {
		events = append(events, YearChanged{next.Year})
	}
	if next.Office != prev.Office {
		events = append(events, OfficeChanged{next.Office})
	}
	if next.Category != prev.Category {
		events = append(events, CategoryChanged{next.Category})
	}
	if next.Search != prev.Search {
		events = append(events, SearchChanged{next.Search})
	}
	if next.Limit != prev.Limit {
		events = append(events, PageSizeChanged{next.Limit})
	}

	if len(events) == 0 {
		return Apply(prev, PageChanged{next.Page})
	}

	out := prev
	for _, e := range events {
		out = Apply(out, e)
	}
	return out
}
