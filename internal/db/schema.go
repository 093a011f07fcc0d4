package db

// schemas holds the bootstrap DDL per driver. Uniqueness is enforced here as
// well as by the handlers' pre-checks, so concurrent creates of the same key
// lose with ErrConflict instead of inserting a duplicate.
var schemas = map[string][]string{
	DriverSQLite: {
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username VARCHAR(50) UNIQUE NOT NULL,
			email VARCHAR(120) UNIQUE NOT NULL,
			password_hash VARCHAR(128) NOT NULL,
			created_at TIMESTAMP NOT NULL,
			is_active BOOLEAN DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS planets (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name VARCHAR(100) UNIQUE NOT NULL,
			description TEXT,
			image_url VARCHAR(255)
		)`,
		`CREATE TABLE IF NOT EXISTS characters (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name VARCHAR(100) UNIQUE NOT NULL,
			description TEXT,
			image_url VARCHAR(255),
			planet_id INTEGER,
			FOREIGN KEY (planet_id) REFERENCES planets(id)
		)`,
		`CREATE TABLE IF NOT EXISTS favorites (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			planet_id INTEGER,
			character_id INTEGER,
			FOREIGN KEY (user_id) REFERENCES users(id),
			FOREIGN KEY (planet_id) REFERENCES planets(id),
			FOREIGN KEY (character_id) REFERENCES characters(id),
			UNIQUE (user_id, planet_id),
			UNIQUE (user_id, character_id),
			CHECK ((planet_id IS NULL) <> (character_id IS NULL))
		)`,
		`CREATE TABLE IF NOT EXISTS posts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title VARCHAR(200) NOT NULL,
			content TEXT NOT NULL,
			user_id INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id)
		)`,
	},
	DriverPostgres: {
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			username VARCHAR(50) UNIQUE NOT NULL,
			email VARCHAR(120) UNIQUE NOT NULL,
			password_hash VARCHAR(128) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			is_active BOOLEAN DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS planets (
			id SERIAL PRIMARY KEY,
			name VARCHAR(100) UNIQUE NOT NULL,
			description TEXT,
			image_url VARCHAR(255)
		)`,
		`CREATE TABLE IF NOT EXISTS characters (
			id SERIAL PRIMARY KEY,
			name VARCHAR(100) UNIQUE NOT NULL,
			description TEXT,
			image_url VARCHAR(255),
			planet_id INTEGER REFERENCES planets(id)
		)`,
		`CREATE TABLE IF NOT EXISTS favorites (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id),
			planet_id INTEGER REFERENCES planets(id),
			character_id INTEGER REFERENCES characters(id),
			UNIQUE (user_id, planet_id),
			UNIQUE (user_id, character_id),
			CHECK ((planet_id IS NULL) <> (character_id IS NULL))
		)`,
		`CREATE TABLE IF NOT EXISTS posts (
			id SERIAL PRIMARY KEY,
			title VARCHAR(200) NOT NULL,
			content TEXT NOT NULL,
			user_id INTEGER NOT NULL REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
	},
}
