package mysql

const upsertRecordSQL = `
INSERT INTO properties
  (position, name, color, rent, build_cost, rent_with_houses, rent_with_hotel, site_location)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name             = VALUES(name),
  color            = VALUES(color),
  rent             = VALUES(rent),
  build_cost       = VALUES(build_cost),
  rent_with_houses = VALUES(rent_with_houses),
  rent_with_hotel  = VALUES(rent_with_hotel),
  site_location    = VALUES(site_location),
  updated_at       = CURRENT_TIMESTAMP
`

const deleteFromSQL = `DELETE FROM properties WHERE position >= ?`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// Source order is the ingest position, never the board position.
const loadRecordsSQL = `
SELECT name, color, rent, build_cost, rent_with_houses, rent_with_hotel, site_location
FROM properties
ORDER BY position
`
