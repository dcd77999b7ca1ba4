package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS profiles (
    name             TEXT PRIMARY KEY,
    age              INTEGER NOT NULL,
    retirement_age   INTEGER NOT NULL,
    salary           REAL NOT NULL,
    scotland         INTEGER NOT NULL DEFAULT 0,
    tax_year         INTEGER NOT NULL,
    document         TEXT NOT NULL,
    saved_at         TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_profiles_saved ON profiles(saved_at);
`
