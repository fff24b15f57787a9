package database

import (
	"cmp"
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"slices"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"
	"golang.org/x/sync/errgroup"
)

// ErrUnavailable marks errors caused by failing to reach the data store.
var ErrUnavailable = errors.New("database unavailable")

// Store runs the read-only browse queries. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// New wraps an open database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Connect prepares a handle for the named driver ("mysql" or "sqlite3")
// without dialing. Connections are made on first use, so a store created
// while the database is down recovers when it comes back.
func Connect(driverName, dsn string) (*Store, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrUnavailable, driverName, err)
	}
	db.SetMaxOpenConns(16)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return New(db), nil
}

// Open connects with the named driver and pings the database to ensure we
// are connected.
func Open(ctx context.Context, driverName, dsn string) (*Store, error) {
	s, err := Connect(driverName, dsn)
	if err != nil {
		return nil, err
	}

	if err := s.db.PingContext(ctx); err != nil {
		s.db.Close()
		return nil, fmt.Errorf("%w: ping %s: %w", ErrUnavailable, driverName, err)
	}

	if driverName == "sqlite3" {
		_, err = s.db.ExecContext(ctx, `PRAGMA journal_mode = WAL`)
		if err != nil {
			s.db.Close()
			return nil, fmt.Errorf("unable to set pragma: %w", err)
		}
	}
	return s, nil
}

// MySQLDSN formats a go-sql-driver DSN for a TCP connection.
func MySQLDSN(host string, port int, user, password, dbname, charset string) string {
	cfg := mysql.NewConfig()
	cfg.User = user
	cfg.Passwd = password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	cfg.DBName = dbname
	if charset != "" {
		cfg.Params = map[string]string{"charset": charset}
	}
	return cfg.FormatDSN()
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Ping reports whether the data store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

// IsUnavailable tells connectivity failures apart from query failures.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrUnavailable) || errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) || errors.Is(err, mysql.ErrInvalidConn) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1040, 1044, 1045, 1049: // too many connections, access denied, unknown database
			return true
		}
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrCantOpen || liteErr.Code == sqlite3.ErrNotADB
	}
	return false
}

// CreateTables creates the browse tables if they do not exist. Used for local
// sqlite databases; production tables are owned by the ingestion process.
func (s *Store) CreateTables(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS talukofficedata(
			Sl_No INTEGER NOT NULL PRIMARY KEY,
			Office_Name TEXT NOT NULL,
			File_No TEXT NOT NULL,
			Sub TEXT NOT NULL,
			Year TEXT NOT NULL,
			` + "`data-category`" + ` TEXT NOT NULL,
			Volume_No TEXT,
			file_id INTEGER NOT NULL,
			office_code INTEGER NOT NULL,
			File_Name TEXT,
			No_OF_Records_Extracted INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS villagedata(
			Sl_No INTEGER NOT NULL PRIMARY KEY,
			district_code INTEGER NOT NULL,
			taluk_code INTEGER NOT NULL,
			hobli_code INTEGER NOT NULL,
			village_code INTEGER NOT NULL,
			Office_Name TEXT NOT NULL,
			File_No TEXT,
			Volume_No TEXT,
			Sub TEXT,
			Year TEXT NOT NULL,
			` + "`data-category`" + ` TEXT NOT NULL,
			file_id INTEGER NOT NULL,
			office_code INTEGER NOT NULL,
			File_Name TEXT,
			No_OF_Records_Extracted INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS village_codes(
			district_code INTEGER NOT NULL,
			district_name TEXT NOT NULL,
			taluk_code INTEGER NOT NULL,
			taluk_name TEXT NOT NULL,
			hobli_code INTEGER NOT NULL,
			hobli_name TEXT NOT NULL,
			village_code INTEGER NOT NULL,
			village_name TEXT NOT NULL,
			UNIQUE(district_code, taluk_code, hobli_code, village_code)
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("unable to create tables: %w", err)
		}
	}
	return nil
}

// QueryTaluk returns one page of taluk office records. Page and limit must
// be normalized by the caller.
func (s *Store) QueryTaluk(ctx context.Context, q TalukQuery) (TalukPage, error) {
	stmt := BuildTalukQuery(q)

	var (
		total   int
		records []TalukRecord
		filters TalukFilters
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		total, err = s.count(ctx, stmt)
		return err
	})
	g.Go(func() (err error) {
		records, err = s.talukRows(ctx, stmt)
		return err
	})
	g.Go(func() (err error) {
		filters, err = s.talukFilters(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return TalukPage{}, err
	}

	return TalukPage{
		Data:       records,
		Pagination: NewPagination(q.Page, q.Limit, total),
		Filters:    filters,
	}, nil
}

// QueryVillage returns one page of village records together with the full
// code lookup table.
func (s *Store) QueryVillage(ctx context.Context, q VillageQuery) (VillagePage, error) {
	stmt := BuildVillageQuery(q)

	var (
		total   int
		records []VillageRecord
		codes   []CodeLookupRow
		filters VillageFilters
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		total, err = s.count(ctx, stmt)
		return err
	})
	g.Go(func() (err error) {
		records, err = s.villageRows(ctx, stmt)
		return err
	})
	g.Go(func() (err error) {
		codes, err = s.CodeLookup(ctx)
		return err
	})
	g.Go(func() (err error) {
		filters, err = s.villageFilters(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return VillagePage{}, err
	}

	return VillagePage{
		Data:         records,
		VillageCodes: codes,
		Pagination:   NewPagination(q.Page, q.Limit, total),
		Filters:      filters,
	}, nil
}

func (s *Store) count(ctx context.Context, stmt Statement) (int, error) {
	var total int
	err := s.db.QueryRowContext(ctx, stmt.Count, stmt.CountArgs...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count query failed: %w", err)
	}
	return total, nil
}

func (s *Store) talukRows(ctx context.Context, stmt Statement) ([]TalukRecord, error) {
	rows, err := s.db.QueryContext(ctx, stmt.Data, stmt.DataArgs...)
	if err != nil {
		return nil, fmt.Errorf("data query failed: %w", err)
	}
	defer rows.Close()

	records := []TalukRecord{}
	for rows.Next() {
		var r TalukRecord
		err := rows.Scan(&r.SlNo, &r.OfficeName, &r.FileNo, &r.Sub, &r.Year, &r.Category,
			&r.VolumeNo, &r.FileID, &r.OfficeCode, &r.FileName, &r.RecordsCounted)
		if err != nil {
			return nil, fmt.Errorf("scan taluk record: %w", err)
		}
		records = append(records, r)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return records, nil
}

func (s *Store) villageRows(ctx context.Context, stmt Statement) ([]VillageRecord, error) {
	rows, err := s.db.QueryContext(ctx, stmt.Data, stmt.DataArgs...)
	if err != nil {
		return nil, fmt.Errorf("data query failed: %w", err)
	}
	defer rows.Close()

	records := []VillageRecord{}
	for rows.Next() {
		var r VillageRecord
		err := rows.Scan(&r.SlNo, &r.DistrictCode, &r.TalukCode, &r.HobliCode, &r.VillageCode,
			&r.OfficeName, &r.FileNo, &r.VolumeNo, &r.Sub, &r.Year, &r.Category,
			&r.FileID, &r.OfficeCode, &r.FileName, &r.RecordsCounted)
		if err != nil {
			return nil, fmt.Errorf("scan village record: %w", err)
		}
		records = append(records, r)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return records, nil
}

// CodeLookup returns the whole code lookup table.
func (s *Store) CodeLookup(ctx context.Context) ([]CodeLookupRow, error) {
	rows, err := s.db.QueryContext(ctx, codesQuery)
	if err != nil {
		return nil, fmt.Errorf("code lookup query failed: %w", err)
	}
	defer rows.Close()

	codes := []CodeLookupRow{}
	for rows.Next() {
		var c CodeLookupRow
		err := rows.Scan(&c.DistrictCode, &c.DistrictName, &c.TalukCode, &c.TalukName,
			&c.HobliCode, &c.HobliName, &c.VillageCode, &c.VillageName)
		if err != nil {
			return nil, fmt.Errorf("scan code lookup row: %w", err)
		}
		codes = append(codes, c)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return codes, nil
}

func (s *Store) talukFilters(ctx context.Context) (TalukFilters, error) {
	rows, err := s.db.QueryContext(ctx, talukFiltersQuery)
	if err != nil {
		return TalukFilters{}, fmt.Errorf("filters query failed: %w", err)
	}
	defer rows.Close()

	var years, offices []string
	for rows.Next() {
		var year, office string
		if err := rows.Scan(&year, &office); err != nil {
			return TalukFilters{}, fmt.Errorf("scan filters: %w", err)
		}
		years = append(years, year)
		offices = append(offices, office)
	}

	if rows.Err() != nil {
		return TalukFilters{}, rows.Err()
	}

	return TalukFilters{
		Years:   distinctDesc(years),
		Offices: distinct(offices),
	}, nil
}

func (s *Store) villageFilters(ctx context.Context) (VillageFilters, error) {
	rows, err := s.db.QueryContext(ctx, villageFiltersQuery)
	if err != nil {
		return VillageFilters{}, fmt.Errorf("filters query failed: %w", err)
	}
	defer rows.Close()

	var f VillageFilters
	for rows.Next() {
		var d, t, h, v int
		var year, category string
		if err := rows.Scan(&d, &t, &h, &v, &year, &category); err != nil {
			return VillageFilters{}, fmt.Errorf("scan filters: %w", err)
		}
		f.Districts = append(f.Districts, d)
		f.Taluks = append(f.Taluks, t)
		f.Hoblis = append(f.Hoblis, h)
		f.Villages = append(f.Villages, v)
		f.Years = append(f.Years, year)
		f.Categories = append(f.Categories, category)
	}

	if rows.Err() != nil {
		return VillageFilters{}, rows.Err()
	}

	return VillageFilters{
		Districts:  distinct(f.Districts),
		Taluks:     distinct(f.Taluks),
		Hoblis:     distinct(f.Hoblis),
		Villages:   distinct(f.Villages),
		Years:      distinctDesc(f.Years),
		Categories: distinct(f.Categories),
	}, nil
}

// distinct sorts ascending and removes duplicates. Never returns nil so the
// JSON lists are [] rather than null.
func distinct[T cmp.Ordered](values []T) []T {
	out := slices.Clone(values)
	slices.Sort(out)
	out = slices.Compact(out)
	if out == nil {
		out = []T{}
	}
	return out
}

func distinctDesc[T cmp.Ordered](values []T) []T {
	out := distinct(values)
	slices.Reverse(out)
	return out
}
