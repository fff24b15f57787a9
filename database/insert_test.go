package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func intp(i int) *int { return &i }

func TestValueTuples(t *testing.T) {
	assert.Equal(t, "(?)", valueTuples(1, 1))
	assert.Equal(t, "(?, ?, ?), (?, ?, ?)", valueTuples(2, 3))
}

func TestInsertTaluk_Batches(t *testing.T) {
	store := openSQLite(t)
	ctx := context.Background()

	// More rows than fit in one statement.
	records := make([]TalukRecord, 250)
	for i := range records {
		records[i] = TalukRecord{
			SlNo: i + 1, OfficeName: "Taluk Office, ಯಲಹಂಕ", FileNo: "CR", Sub: "Sub",
			Year: "1999-2000", Category: "File", FileID: int64(i + 1), OfficeCode: 215,
		}
	}
	records[0].VolumeNo = strp("Vol 1")
	records[0].RecordsCounted = intp(3)

	require.NoError(t, store.InsertTaluk(ctx, records))

	page, err := store.QueryTaluk(ctx, TalukQuery{Page: 1, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, 250, page.Pagination.Total)
	assert.Equal(t, "Vol 1", *page.Data[0].VolumeNo)
	assert.Equal(t, 3, *page.Data[0].RecordsCounted)
	assert.Nil(t, page.Data[1].VolumeNo)
	assert.Nil(t, page.Data[1].FileName)
}

func TestInsertVillage_WithCodes(t *testing.T) {
	store := openSQLite(t)
	ctx := context.Background()

	require.NoError(t, store.InsertVillage(ctx, []VillageRecord{
		{SlNo: 1, DistrictCode: 19, TalukCode: 9, HobliCode: 1, VillageCode: 72, OfficeName: "Taluk Office, ಮಾಲೂರು",
			VolumeNo: strp("12"), Year: "1990-1991", Category: "Register", FileID: 10, OfficeCode: 100},
	}))
	require.NoError(t, store.InsertCodes(ctx, []CodeLookupRow{
		{DistrictCode: 19, DistrictName: "ಮಾಲೂರು", TalukCode: 9, TalukName: "ಮಾಲೂರು", HobliCode: 1, HobliName: "ಕಸಬ", VillageCode: 72, VillageName: "ಅಗರಹರ"},
	}))
	require.NoError(t, store.InsertCodes(ctx, nil))

	page, err := store.QueryVillage(ctx, VillageQuery{District: 19, Page: 1, Limit: 50})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Nil(t, page.Data[0].FileNo)
	assert.Equal(t, "12", *page.Data[0].VolumeNo)
	require.Len(t, page.VillageCodes, 1)
	assert.Equal(t, "ಅಗರಹರ", page.VillageCodes[0].VillageName)
}
