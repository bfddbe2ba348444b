package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS budgetable (
    id         TEXT PRIMARY KEY,
    title      TEXT NOT NULL,
    price      REAL NOT NULL,
    link       TEXT NOT NULL DEFAULT '',
    note       TEXT NOT NULL DEFAULT '',
    status     TEXT NOT NULL DEFAULT 'Unpaid',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);
`
