package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	// The queries of one request run concurrently.
	mock.MatchExpectationsInOrder(false)
	return New(db), mock
}

func TestQueryTaluk_Mock(t *testing.T) {
	store, mock := newMockStore(t)
	q := TalukQuery{Year: "1999-2000", Page: 1, Limit: 20}
	stmt := BuildTalukQuery(q)

	mock.ExpectQuery(stmt.Count).WithArgs("1999-2000").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(1))

	mock.ExpectQuery(stmt.Data).WithArgs("1999-2000", int64(20), int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{
			"Sl_No", "Office_Name", "File_No", "Sub", "Year", "data-category", "Volume_No",
			"file_id", "office_code", "File_Name", "No_OF_Records_Extracted",
		}).AddRow(1, "Taluk Office, ಯಲಹಂಕ", "RRT(DIS) CR 259/1999-00", "RRT(DIS) CR 259/1999-00",
			"1999-2000", "File", nil, 24047722, 215, "extracted_data_215_100_20250826_204726.json", 1))

	mock.ExpectQuery(talukFiltersQuery).
		WillReturnRows(sqlmock.NewRows([]string{"Year", "Office_Name"}).
			AddRow("1999-2000", "Taluk Office, ಯಲಹಂಕ").
			AddRow("1998-1999", "Taluk Office, ಯಲಹಂಕ").
			AddRow("1998-1999", "Taluk Office, ಆನೇಕಲ್"))

	page, err := store.QueryTaluk(context.Background(), q)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, Pagination{Page: 1, Limit: 20, Total: 1, Pages: 1}, page.Pagination)
	require.Len(t, page.Data, 1)
	assert.Nil(t, page.Data[0].VolumeNo)
	assert.Equal(t, int64(24047722), page.Data[0].FileID)
	assert.Equal(t, []string{"1999-2000", "1998-1999"}, page.Filters.Years)
	assert.Equal(t, []string{"Taluk Office, ಆನೇಕಲ್", "Taluk Office, ಯಲಹಂಕ"}, page.Filters.Offices)
}

func TestQueryVillage_MockFailure(t *testing.T) {
	store, mock := newMockStore(t)
	q := VillageQuery{District: 19, Page: 1, Limit: 50}
	stmt := BuildVillageQuery(q)

	mock.ExpectQuery(stmt.Count).WithArgs(int64(19)).WillReturnError(fmt.Errorf("table missing"))
	mock.ExpectQuery(stmt.Data).WithArgs(int64(19), int64(50), int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"Sl_No"}))
	mock.ExpectQuery(codesQuery).WillReturnRows(sqlmock.NewRows([]string{"district_code"}))
	mock.ExpectQuery(villageFiltersQuery).WillReturnRows(sqlmock.NewRows([]string{"district_code"}))

	_, err := store.QueryVillage(context.Background(), q)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count query failed")
	assert.False(t, IsUnavailable(err))
}

func TestIsUnavailable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"sentinel", fmt.Errorf("%w: ping", ErrUnavailable), true},
		{"bad conn", fmt.Errorf("query: %w", driver.ErrBadConn), true},
		{"access denied", &mysql.MySQLError{Number: 1045, Message: "Access denied"}, true},
		{"syntax error", &mysql.MySQLError{Number: 1064, Message: "syntax"}, false},
		{"plain", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUnavailable(tt.err))
		})
	}
}

func TestMySQLDSN(t *testing.T) {
	dsn := MySQLDSN("localhost", 3306, "root", "secret", "recordroom", "utf8mb4")
	cfg, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)

	assert.Equal(t, "root", cfg.User)
	assert.Equal(t, "secret", cfg.Passwd)
	assert.Equal(t, "localhost:3306", cfg.Addr)
	assert.Equal(t, "recordroom", cfg.DBName)
	// ParseDSN keeps charset out of Params.
	assert.Contains(t, dsn, "charset=utf8mb4")
}

// openSQLite returns a store over a fresh on-disk sqlite database.
func openSQLite(t *testing.T) *Store {
	t.Helper()

	ctx := context.Background()
	store, err := Open(ctx, "sqlite3", filepath.Join(t.TempDir(), "records.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.CreateTables(ctx))
	return store
}

func seedTaluk(t *testing.T, store *Store, n int) {
	t.Helper()

	// Insert in reverse to make sure ordering comes from the query.
	for i := n; i >= 1; i-- {
		year := "1999-2000"
		if i%2 == 0 {
			year = "2000-2001"
		}
		_, err := store.db.Exec("INSERT INTO talukofficedata VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			i, "Taluk Office, ಯಲಹಂಕ", fmt.Sprintf("RRT CR %d", i), fmt.Sprintf("SUB %d", i),
			year, "File", nil, 24047700+i, 215, nil, nil)
		require.NoError(t, err)
	}
}

type villageSeed struct {
	slNo, district, taluk, hobli, village int
	category                              string
	volume                                any
}

func seedVillage(t *testing.T, store *Store, rows []villageSeed) {
	t.Helper()

	for _, r := range rows {
		_, err := store.db.Exec("INSERT INTO villagedata VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			r.slNo, r.district, r.taluk, r.hobli, r.village, "Taluk Office, ಮಾಲೂರು",
			nil, r.volume, nil, "1990-1991", r.category, 24530300+r.slNo, 100, nil, 1)
		require.NoError(t, err)
	}

	_, err := store.db.Exec("INSERT INTO village_codes VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		19, "ಮಾಲೂರು", 9, "ಮಾಲೂರು", 1, "ಕಸಬ", 72, "ಅಗರಹರ")
	require.NoError(t, err)
}

func TestQueryTaluk_SQLite(t *testing.T) {
	store := openSQLite(t)
	seedTaluk(t, store, 45)
	ctx := context.Background()

	t.Run("first page of 45 rows", func(t *testing.T) {
		page, err := store.QueryTaluk(ctx, TalukQuery{Page: 1, Limit: 20})
		require.NoError(t, err)

		assert.Equal(t, Pagination{Page: 1, Limit: 20, Total: 45, Pages: 3}, page.Pagination)
		require.Len(t, page.Data, 20)
		for i, r := range page.Data {
			assert.Equal(t, i+1, r.SlNo)
		}
		assert.Equal(t, []string{"2000-2001", "1999-2000"}, page.Filters.Years)
	})

	t.Run("last page", func(t *testing.T) {
		page, err := store.QueryTaluk(ctx, TalukQuery{Page: 3, Limit: 20})
		require.NoError(t, err)
		require.Len(t, page.Data, 5)
		assert.Equal(t, 41, page.Data[0].SlNo)
	})

	t.Run("case-insensitive search", func(t *testing.T) {
		page, err := store.QueryTaluk(ctx, TalukQuery{Search: "rrt cr 4", Page: 1, Limit: 100})
		require.NoError(t, err)
		// 4, 40..45
		assert.Equal(t, 7, page.Pagination.Total)
		assert.Len(t, page.Data, 7)
	})

	t.Run("wildcards are literal", func(t *testing.T) {
		page, err := store.QueryTaluk(ctx, TalukQuery{Search: "%", Page: 1, Limit: 20})
		require.NoError(t, err)
		assert.Equal(t, 0, page.Pagination.Total)
		assert.Equal(t, 1, page.Pagination.Pages)
		assert.NotNil(t, page.Data)
	})

	t.Run("year filter", func(t *testing.T) {
		page, err := store.QueryTaluk(ctx, TalukQuery{Year: "2000-2001", Page: 1, Limit: 100})
		require.NoError(t, err)
		assert.Equal(t, 22, page.Pagination.Total)
		for _, r := range page.Data {
			assert.Equal(t, "2000-2001", r.Year)
		}
	})
}

func TestQueryVillage_SQLite(t *testing.T) {
	store := openSQLite(t)
	seedVillage(t, store, []villageSeed{
		{slNo: 1, district: 19, taluk: 9, hobli: 1, village: 72, category: "Register", volume: "VOL-1"},
		{slNo: 2, district: 19, taluk: 9, hobli: 2, village: 10, category: "File"},
		{slNo: 3, district: 19, taluk: 4, hobli: 1, village: 3, category: "File"},
		{slNo: 4, district: 20, taluk: 9, hobli: 1, village: 5, category: "Register"},
	})
	ctx := context.Background()

	t.Run("no filters returns the full row count", func(t *testing.T) {
		page, err := store.QueryVillage(ctx, VillageQuery{Page: 1, Limit: 50})
		require.NoError(t, err)
		assert.Equal(t, 4, page.Pagination.Total)
		assert.Len(t, page.VillageCodes, 1)
		assert.Equal(t, []int{19, 20}, page.Filters.Districts)
		assert.Equal(t, []int{4, 9}, page.Filters.Taluks)
		assert.Equal(t, []string{"File", "Register"}, page.Filters.Categories)
	})

	t.Run("district and taluk", func(t *testing.T) {
		page, err := store.QueryVillage(ctx, VillageQuery{District: 19, Taluk: 9, Page: 1, Limit: 50})
		require.NoError(t, err)
		require.Len(t, page.Data, 2)
		for _, r := range page.Data {
			assert.Equal(t, 19, r.DistrictCode)
			assert.Equal(t, 9, r.TalukCode)
		}
	})

	t.Run("taluk alone spans districts", func(t *testing.T) {
		page, err := store.QueryVillage(ctx, VillageQuery{Taluk: 9, Page: 1, Limit: 50})
		require.NoError(t, err)
		assert.Equal(t, 3, page.Pagination.Total)
	})

	t.Run("category", func(t *testing.T) {
		page, err := store.QueryVillage(ctx, VillageQuery{Category: "File", Page: 1, Limit: 50})
		require.NoError(t, err)
		require.Len(t, page.Data, 2)
		for _, r := range page.Data {
			assert.Equal(t, "File", r.Category)
			assert.Nil(t, r.FileNo)
		}
	})

	t.Run("search matches volume number", func(t *testing.T) {
		page, err := store.QueryVillage(ctx, VillageQuery{Search: "vol-1", Page: 1, Limit: 50})
		require.NoError(t, err)
		require.Len(t, page.Data, 1)
		require.NotNil(t, page.Data[0].VolumeNo)
		assert.Equal(t, "VOL-1", *page.Data[0].VolumeNo)
	})
}

func TestOpen_Unreachable(t *testing.T) {
	_, err := Open(context.Background(), "sqlite3", filepath.Join(t.TempDir(), "missing", "records.db"))
	require.Error(t, err)
	assert.True(t, IsUnavailable(err))
}
