package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/shoppr/pkg/types"
)

// exportSet is one JSONL file written by Export, named after its table.
type exportSet struct {
	table   string
	records func(tx *Tx) ([]types.Dict, error)
}

func (s exportSet) file() string { return s.table + ".jsonl" }

func dicts[T types.Dicter](items []T, err error) ([]types.Dict, error) {
	if err != nil {
		return nil, err
	}
	out := make([]types.Dict, len(items))
	for i, it := range items {
		out[i] = it.ToDict()
	}
	return out, nil
}

var exportSets = []exportSet{
	{types.TableBaseItems, func(tx *Tx) ([]types.Dict, error) { return dicts(tx.BaseItems().Query().All()) }},
	{types.TableRecipes, func(tx *Tx) ([]types.Dict, error) { return dicts(tx.Recipes().Query().All()) }},
	{types.TableShops, func(tx *Tx) ([]types.Dict, error) { return dicts(tx.Shops().Query().All()) }},
	{types.TableAisles, func(tx *Tx) ([]types.Dict, error) { return dicts(tx.Aisles().Query().All()) }},
	{types.TableMeals, func(tx *Tx) ([]types.Dict, error) { return dicts(tx.Meals().Query().All()) }},
	{types.TableMealplans, func(tx *Tx) ([]types.Dict, error) { return dicts(tx.Mealplans().Query().All()) }},
	{types.TableShoppingLists, func(tx *Tx) ([]types.Dict, error) { return dicts(tx.ShoppingLists().Query().All()) }},
}

// Export writes every entity as one JSON object per line, one file per entity
// type, into dir. Each file is replaced atomically. It returns the number of
// records written per file.
func Export(tx *Tx, dir string) (map[string]int, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}
	counts := make(map[string]int, len(exportSets))
	for _, set := range exportSets {
		records, err := set.records(tx)
		if err != nil {
			return nil, fmt.Errorf("exporting %s: %w", set.file(), err)
		}
		lines := make([]json.RawMessage, len(records))
		for i, rec := range records {
			b, err := json.Marshal(rec)
			if err != nil {
				return nil, fmt.Errorf("encoding %s record: %w", set.file(), err)
			}
			lines[i] = b
		}
		if err := writeJSONL(filepath.Join(dir, set.file()), lines); err != nil {
			return nil, err
		}
		counts[set.file()] = len(records)
	}
	return counts, nil
}

// writeJSONL atomically writes records to a JSONL file using the temp-file,
// fsync, rename pattern.
func writeJSONL(path string, records []json.RawMessage) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	fail := func(format string, err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf(format, err)
	}

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			return fail("writing record: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fail("writing newline: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fail("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
