package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// maxParams keeps every statement under SQLITE_MAX_VARIABLE_NUMBER.
const maxParams = 999

// valueTuples returns "(?, ?), (?, ?)" for rows tuples of cols placeholders.
func valueTuples(rows, cols int) string {
	tuple := "(" + strings.TrimSuffix(strings.Repeat("?, ", cols), ", ") + ")"
	return strings.TrimSuffix(strings.Repeat(tuple+", ", rows), ", ")
}

// insertBatches inserts n rows into table in batches inside tx. args returns
// the column values of row i in the order of columns.
func insertBatches(ctx context.Context, tx *sql.Tx, table, columns string, n int, args func(i int) []any) error {
	cols := strings.Count(columns, ",") + 1
	batchSize := maxParams / cols

	for i := 0; i < n; i += batchSize {
		end := min(i+batchSize, n)

		values := make([]any, 0, (end-i)*cols)
		for j := i; j < end; j++ {
			values = append(values, args(j)...)
		}

		query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", table, columns, valueTuples(end-i, cols))
		if _, err := tx.ExecContext(ctx, query, values...); err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
	}
	return nil
}

func (s *Store) insert(ctx context.Context, table, columns string, n int, args func(i int) []any) error {
	if n == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertBatches(ctx, tx, table, columns, n, args); err != nil {
		return err
	}
	return tx.Commit()
}

// InsertTaluk stores taluk office records in one transaction.
func (s *Store) InsertTaluk(ctx context.Context, records []TalukRecord) error {
	return s.insert(ctx, talukTable, talukColumns, len(records), func(i int) []any {
		r := records[i]
		return []any{r.SlNo, r.OfficeName, r.FileNo, r.Sub, r.Year, r.Category, r.VolumeNo,
			r.FileID, r.OfficeCode, r.FileName, r.RecordsCounted}
	})
}

// InsertVillage stores village records in one transaction.
func (s *Store) InsertVillage(ctx context.Context, records []VillageRecord) error {
	return s.insert(ctx, villageTable, villageColumns, len(records), func(i int) []any {
		r := records[i]
		return []any{r.SlNo, r.DistrictCode, r.TalukCode, r.HobliCode, r.VillageCode, r.OfficeName,
			r.FileNo, r.VolumeNo, r.Sub, r.Year, r.Category, r.FileID, r.OfficeCode, r.FileName,
			r.RecordsCounted}
	})
}

// InsertCodes stores lookup rows in one transaction.
func (s *Store) InsertCodes(ctx context.Context, rows []CodeLookupRow) error {
	return s.insert(ctx, codesTable, codeColumns, len(rows), func(i int) []any {
		r := rows[i]
		return []any{r.DistrictCode, r.DistrictName, r.TalukCode, r.TalukName,
			r.HobliCode, r.HobliName, r.VillageCode, r.VillageName}
	})
}
