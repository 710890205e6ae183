package db

// cacheVersion is stored in PRAGMA user_version. Caches written with an
// older layout are dropped and rebuilt on open.
const cacheVersion = 2

const dropTables = `
DROP TABLE IF EXISTS trips;
DROP TABLE IF EXISTS cities;
`

const createTripsTable = `
CREATE TABLE IF NOT EXISTS trips (
    city TEXT NOT NULL,
    position INTEGER NOT NULL,
    record_id INTEGER NOT NULL,
    start_time TEXT NOT NULL,
    end_time TEXT,
    trip_duration REAL NOT NULL,
    start_station TEXT NOT NULL,
    end_station TEXT NOT NULL,
    user_type TEXT,
    gender TEXT,
    birth_year INTEGER,
    PRIMARY KEY (city, position)
);

CREATE INDEX IF NOT EXISTS idx_trips_city ON trips(city);
`

// Schema for imported cities. The has_* flags keep optional column absence
// distinct from a column whose values are all NULL. The source_* columns
// identify the CSV file the trips were read from; source_mtime is in
// Unix nanoseconds.
const createCitiesTable = `
CREATE TABLE IF NOT EXISTS cities (
    city TEXT PRIMARY KEY,
    has_end_time INTEGER NOT NULL DEFAULT 0,
    has_user_type INTEGER NOT NULL DEFAULT 0,
    has_gender INTEGER NOT NULL DEFAULT 0,
    has_birth_year INTEGER NOT NULL DEFAULT 0,
    row_count INTEGER NOT NULL DEFAULT 0,
    source_path TEXT NOT NULL DEFAULT '',
    source_size INTEGER NOT NULL DEFAULT 0,
    source_mtime INTEGER NOT NULL DEFAULT 0,
    imported_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

const deleteCityTrips = `
DELETE FROM trips WHERE city = ?
`

const insertTrip = `
INSERT INTO trips (
    city, position, record_id, start_time, end_time, trip_duration,
    start_station, end_station, user_type, gender, birth_year
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const upsertCity = `
INSERT OR REPLACE INTO cities (
    city, has_end_time, has_user_type, has_gender, has_birth_year, row_count,
    source_path, source_size, source_mtime, imported_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
`

const selectCity = `
SELECT has_end_time, has_user_type, has_gender, has_birth_year, row_count,
       source_path, source_size, source_mtime
FROM cities WHERE city = ?
`

const selectCitySource = `
SELECT source_path, source_size, source_mtime FROM cities WHERE city = ?
`

const selectCityTrips = `
SELECT record_id, start_time, end_time, trip_duration,
       start_station, end_station, user_type, gender, birth_year
FROM trips
WHERE city = ?
ORDER BY position ASC
`

const selectCities = `
SELECT city, row_count, source_path, imported_at FROM cities
ORDER BY city ASC
`
