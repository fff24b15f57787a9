package ui

import "github.com/abiiranathan/recordroom/database"

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

// PlaceholderTaluk is shown when the taluk office data cannot be loaded.
func PlaceholderTaluk() database.TalukPage {
	return database.TalukPage{
		Data: []database.TalukRecord{
			{
				SlNo:           1,
				OfficeName:     "Taluk Office, ಯಲಹಂಕ",
				FileNo:         "RRT(DIS) CR 259/1999-00",
				Sub:            "RRT(DIS) CR 259/1999-00",
				Year:           "1999-2000",
				Category:       CategoryFile,
				FileID:         24047722,
				OfficeCode:     215,
				FileName:       strPtr("extracted_data_215_100_20250826_204726.json"),
				RecordsCounted: intPtr(1),
			},
		},
		Pagination: database.NewPagination(1, database.TalukLimits.Default, 1),
		Filters: database.TalukFilters{
			Years:   []string{"1999-2000"},
			Offices: []string{"Taluk Office, ಯಲಹಂಕ"},
		},
	}
}

// PlaceholderVillage is shown when the village data cannot be loaded.
func PlaceholderVillage() database.VillagePage {
	return database.VillagePage{
		Data: []database.VillageRecord{
			{
				SlNo:           1,
				DistrictCode:   19,
				TalukCode:      9,
				HobliCode:      1,
				VillageCode:    72,
				OfficeName:     "Taluk Office, ಮಾಲೂರು",
				Year:           "1990-1991",
				Category:       CategoryRegister,
				FileID:         24530361,
				OfficeCode:     100,
				FileName:       strPtr("ಕಸಬ_ಅಗರಹರ_20250829_125227.json"),
				RecordsCounted: intPtr(1),
			},
		},
		VillageCodes: []database.CodeLookupRow{},
		Pagination:   database.NewPagination(1, database.VillageLimits.Default, 1),
		Filters: database.VillageFilters{
			Districts:  []int{19},
			Taluks:     []int{9},
			Hoblis:     []int{1},
			Villages:   []int{72},
			Years:      []string{"1990-1991"},
			Categories: []string{CategoryRegister},
		},
	}
}
