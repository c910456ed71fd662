package config

// DefaultDatabasePath is used when DATABASE_URL and DATABASE_PATH are
// both unset.
const DefaultDatabasePath = "./biblioteca.db"
