// Package importer loads record files into the browse tables.
//
// A record file is a JSON object with any of the keys "taluk",
// "village" and "village_codes", each an array of rows in the same shape
// the JSON API returns them.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/abiiranathan/recordroom/database"
)

// Inserter stores decoded rows.
type Inserter interface {
	InsertTaluk(ctx context.Context, records []database.TalukRecord) error
	InsertVillage(ctx context.Context, records []database.VillageRecord) error
	InsertCodes(ctx context.Context, rows []database.CodeLookupRow) error
}

// Batch is the content of one record file.
type Batch struct {
	Taluk   []database.TalukRecord   `json:"taluk"`
	Village []database.VillageRecord `json:"village"`
	Codes   []database.CodeLookupRow `json:"village_codes"`
}

// Stats counts what an import stored.
type Stats struct {
	Files   int
	Taluk   int
	Village int
	Codes   int
}

func (b *Batch) merge(o Batch) {
	b.Taluk = append(b.Taluk, o.Taluk...)
	b.Village = append(b.Village, o.Village...)
	b.Codes = append(b.Codes, o.Codes...)
}

// ReadFile decodes one record file. Unknown keys are rejected.
func ReadFile(name string) (Batch, error) {
	f, err := os.Open(name)
	if err != nil {
		return Batch{}, err
	}
	defer f.Close()

	var b Batch
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&b); err != nil {
		return Batch{}, fmt.Errorf("%s: %w", name, err)
	}
	return b, nil
}

// Load decodes every .json file below dir in workers goroutines and
// stores the rows. Nothing is stored if any file fails to decode.
func Load(ctx context.Context, store Inserter, dir string, workers int) (Stats, error) {
	files, err := WalkDir(dir, []string{".json"})
	if err != nil {
		return Stats{}, fmt.Errorf("unable to load files at %s: %w", dir, err)
	}

	numFiles := len(files)
	workers = max(1, min(workers, numFiles))
	log.Printf("Found %d files in %s\n", numFiles, dir)

	var (
		mu       sync.Mutex
		all      Batch
		firstErr error
		wg       sync.WaitGroup
	)

	jobs := make(chan string, workers)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()

			for name := range jobs {
				b, err := ReadFile(name)

				mu.Lock()
				if err != nil && firstErr == nil {
					firstErr = err
				}
				all.merge(b)
				mu.Unlock()
			}
		}()
	}

	for _, file := range files {
		jobs <- file
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return Stats{}, firstErr
	}

	if err := store.InsertCodes(ctx, all.Codes); err != nil {
		return Stats{}, err
	}
	if err := store.InsertTaluk(ctx, all.Taluk); err != nil {
		return Stats{}, err
	}
	if err := store.InsertVillage(ctx, all.Village); err != nil {
		return Stats{}, err
	}

	stats := Stats{Files: numFiles, Taluk: len(all.Taluk), Village: len(all.Village), Codes: len(all.Codes)}
	log.Printf("Imported %d taluk, %d village and %d code rows\n", stats.Taluk, stats.Village, stats.Codes)
	return stats, nil
}
