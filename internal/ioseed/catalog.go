package ioseed

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"
)

// catalogRecord is one row of the SQLite catalog's species table.
type catalogRecord struct {
	commonName     string
	scientificName sql.NullString
	category       sql.NullString
	description    sql.NullString
}

const catalogQuery = `
SELECT common_name, scientific_name, category, description
FROM species
WHERE common_name IS NOT NULL AND common_name != ''
ORDER BY common_name`

// readCatalog loads all species rows from the catalog file.
func (s *seeder) readCatalog(
	ctx context.Context,
	path string,
) ([]catalogRecord, error) {
	cdb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, CatalogOpenError(path, err)
	}
	defer cdb.Close()

	if err = cdb.PingContext(ctx); err != nil {
		return nil, CatalogOpenError(path, err)
	}

	rows, err := cdb.QueryContext(ctx, catalogQuery)
	if err != nil {
		return nil, CatalogReadError(path, err)
	}
	defer rows.Close()

	var records []catalogRecord
	for rows.Next() {
		var rec catalogRecord
		err = rows.Scan(
			&rec.commonName,
			&rec.scientificName,
			&rec.category,
			&rec.description,
		)
		if err != nil {
			return nil, CatalogReadError(path, err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, CatalogReadError(path, err)
	}
	return records, nil
}
