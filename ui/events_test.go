package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func villageState() FilterState {
	s := NewFilterState(TargetVillage)
	s.District, s.Taluk, s.Hobli, s.Village = 19, 9, 1, 72
	s.Year = "1990-1991"
	s.Page = 4
	return s
}

func TestApply_Cascade(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  func(FilterState) FilterState
	}{
		{
			name:  "district clears taluk hobli village",
			event: DistrictChanged{Code: 20},
			want: func(s FilterState) FilterState {
				s.District, s.Taluk, s.Hobli, s.Village = 20, 0, 0, 0
				return s
			},
		},
		{
			name:  "taluk clears hobli village",
			event: TalukChanged{Code: 4},
			want: func(s FilterState) FilterState {
				s.Taluk, s.Hobli, s.Village = 4, 0, 0
				return s
			},
		},
		{
			name:  "hobli clears village",
			event: HobliChanged{Code: 2},
			want: func(s FilterState) FilterState {
				s.Hobli, s.Village = 2, 0
				return s
			},
		},
		{
			name:  "village has no cascade",
			event: VillageChanged{Code: 5},
			want: func(s FilterState) FilterState {
				s.Village = 5
				return s
			},
		},
		{
			name:  "year keeps hierarchy",
			event: YearChanged{Year: "1991-1992"},
			want: func(s FilterState) FilterState {
				s.Year = "1991-1992"
				return s
			},
		},
		{
			name:  "category All is unset",
			event: CategoryChanged{Category: CategoryAll},
			want: func(s FilterState) FilterState {
				s.Category = ""
				return s
			},
		},
		{
			name:  "page size is clamped",
			event: PageSizeChanged{Limit: 9999},
			want: func(s FilterState) FilterState {
				s.Limit = 500
				return s
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := villageState()
			want := tt.want(before)
			want.Page = 1

			got := Apply(before, tt.event)
			assert.Equal(t, want, got)
			assert.Equal(t, 4, before.Page, "input state must not change")
		})
	}
}

func TestApply_PageChangedKeepsFilters(t *testing.T) {
	s := villageState()
	got := Apply(s, PageChanged{Page: 7})
	assert.Equal(t, 7, got.Page)
	assert.Equal(t, 72, got.Village)

	got = Apply(s, PageChanged{Page: -3})
	assert.Equal(t, 1, got.Page)
}

func TestReconcile(t *testing.T) {
	prev := villageState()

	t.Run("stale lower levels are dropped when district changes", func(t *testing.T) {
		next := prev
		next.District = 20 // form still carries taluk 9, hobli 1, village 72
		got := Reconcile(prev, next)
		assert.Equal(t, 20, got.District)
		assert.Zero(t, got.Taluk)
		assert.Zero(t, got.Hobli)
		assert.Zero(t, got.Village)
		assert.Equal(t, 1, got.Page)
	})

	t.Run("taluk change keeps district", func(t *testing.T) {
		next := prev
		next.Taluk = 4
		got := Reconcile(prev, next)
		assert.Equal(t, 19, got.District)
		assert.Equal(t, 4, got.Taluk)
		assert.Zero(t, got.Hobli)
		assert.Zero(t, got.Village)
	})

	t.Run("search and year together", func(t *testing.T) {
		next := prev
		next.Search = "kasaba"
		next.Year = "2000-2001"
		got := Reconcile(prev, next)
		assert.Equal(t, "kasaba", got.Search)
		assert.Equal(t, "2000-2001", got.Year)
		assert.Equal(t, 72, got.Village)
		assert.Equal(t, 1, got.Page)
	})

	t.Run("page only", func(t *testing.T) {
		next := prev
		next.Page = 9
		got := Reconcile(prev, next)
		assert.Equal(t, 9, got.Page)
		assert.Equal(t, prev.Village, got.Village)
	})
}
