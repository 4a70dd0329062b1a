// Package database handles database connections for the sheet store.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to open a
// connection for one of the supported drivers based on the application's
// configuration:
//   - mysql: the default production backend
//   - postgres: alternative hosted backend
//   - sqlite: local runs and tests (":memory:" for an ephemeral store)
//
// # Connect
//
// Connect opens the connection, tunes the pool and pings the server within
// the configured timeout. A failure here means the persisted store is
// unreachable, which is fatal for every operation.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return fmt.Errorf("sheet store unavailable: %w", err)
//	}
package database
