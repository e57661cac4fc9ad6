// Package migrations embeds the SQL migration files so they can be used
// by the goose programmatic API in tests and server bootstrap.
//
// Each supported dialect has its own directory because identity columns and
// timestamp types differ between Postgres and SQLite.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// Postgres holds the Postgres migrations, rooted at the migration files.
// Pass it to goose.NewProvider with goose.DialectPostgres.
var Postgres = mustSub("postgres")

// SQLite holds the SQLite migrations, rooted at the migration files.
// Pass it to goose.NewProvider with goose.DialectSQLite3.
var SQLite = mustSub("sqlite")

// Tables lists every table created by the migrations, in creation order.
var Tables = []string{"registros", "historico_alteracoes"}

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(files, dir)
	if err != nil {
		panic("migrations: " + err.Error())
	}
	return sub
}
