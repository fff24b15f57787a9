package database

// A file row from the taluk office table. JSON names match the column names
// because clients depend on them.
type TalukRecord struct {
	SlNo           int     `json:"Sl_No"`
	OfficeName     string  `json:"Office_Name"`
	FileNo         string  `json:"File_No"`
	Sub            string  `json:"Sub"`
	Year           string  `json:"Year"`
	Category       string  `json:"data-category"`
	VolumeNo       *string `json:"Volume_No"`
	FileID         int64   `json:"file_id"`
	OfficeCode     int     `json:"office_code"`
	FileName       *string `json:"File_Name"`
	RecordsCounted *int    `json:"No_OF_Records_Extracted"`
}

// A village level record. District, taluk, hobli and village codes are
// resolved to names through the CodeLookupRow table.
type VillageRecord struct {
	SlNo           int     `json:"Sl_No"`
	DistrictCode   int     `json:"district_code"`
	TalukCode      int     `json:"taluk_code"`
	HobliCode      int     `json:"hobli_code"`
	VillageCode    int     `json:"village_code"`
	OfficeName     string  `json:"Office_Name"`
	FileNo         *string `json:"File_No"`
	VolumeNo       *string `json:"Volume_No"`
	Sub            *string `json:"Sub"`
	Year           string  `json:"Year"`
	Category       string  `json:"data-category"`
	FileID         int64   `json:"file_id"`
	OfficeCode     int     `json:"office_code"`
	FileName       *string `json:"File_Name"`
	RecordsCounted *int    `json:"No_OF_Records_Extracted"`
}

// One entry of the district > taluk > hobli > village hierarchy.
type CodeLookupRow struct {
	DistrictCode int    `json:"district_code"`
	DistrictName string `json:"district_name"`
	TalukCode    int    `json:"taluk_code"`
	TalukName    string `json:"taluk_name"`
	HobliCode    int    `json:"hobli_code"`
	HobliName    string `json:"hobli_name"`
	VillageCode  int    `json:"village_code"`
	VillageName  string `json:"village_name"`
}

// Pagination block of a query response.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// Distinct values used to populate the taluk data dropdowns.
type TalukFilters struct {
	Years   []string `json:"years"`
	Offices []string `json:"offices"`
}

// Distinct values used to populate the village data dropdowns.
type VillageFilters struct {
	Districts  []int    `json:"districts"`
	Taluks     []int    `json:"taluks"`
	Hoblis     []int    `json:"hoblis"`
	Villages   []int    `json:"villages"`
	Years      []string `json:"years"`
	Categories []string `json:"categories"`
}

// TalukPage is one page of taluk office records.
type TalukPage struct {
	Data       []TalukRecord `json:"data"`
	Pagination Pagination    `json:"pagination"`
	Filters    TalukFilters  `json:"filters"`
}

// VillagePage is one page of village records plus the code lookup table.
type VillagePage struct {
	Data         []VillageRecord `json:"data"`
	VillageCodes []CodeLookupRow `json:"village_codes"`
	Pagination   Pagination      `json:"pagination"`
	Filters      VillageFilters  `json:"filters"`
}
