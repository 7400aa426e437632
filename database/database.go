/*
Package database uses SQLite to store the contents of WTHOR files so games
can be queried by player name rather than by index.
*/
package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/bodgit/wthor/wthor"
	"go.uber.org/multierr"

	// Database driver
	_ "github.com/mattn/go-sqlite3"
)

// Database holds the SQLite database handle
type Database struct {
	db *sql.DB
}

// Game is a game with the player and tournament names resolved. A name is
// empty if the index has no matching entry
type Game struct {
	Year             int
	Tournament       string
	BlackPlayer      string
	WhitePlayer      string
	Score            int
	TheoreticalScore int
	Moves            []byte
}

// NewDatabase opens an existing database or returns a new empty one
func NewDatabase(file string) (*Database, error) {
	if file == "" {
		return nil, errors.New("no file")
	}

	db, err := sql.Open("sqlite3", file)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{
		"CREATE TABLE IF NOT EXISTS player (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL)",
		"CREATE TABLE IF NOT EXISTS tournament (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL)",
		"CREATE TABLE IF NOT EXISTS game (id INTEGER PRIMARY KEY NOT NULL, year INTEGER NOT NULL, tournament_id INTEGER NOT NULL, black_id INTEGER NOT NULL, white_id INTEGER NOT NULL, score INTEGER NOT NULL, theoretical_score INTEGER NOT NULL, depth INTEGER NOT NULL, moves BLOB)",
		"CREATE INDEX IF NOT EXISTS game_year ON game (year)",
	} {
		if _, err = db.Exec(stmt); err != nil {
			return nil, multierr.Append(err, db.Close())
		}
	}

	return &Database{
		db: db,
	}, nil
}

// Close closes the database rendering it unusable
func (db *Database) Close() error {
	return db.db.Close()
}

func (db *Database) transaction(f func(*sql.Tx) error) error {
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}

	if err = f(tx); err != nil {
		return multierr.Append(err, tx.Rollback())
	}

	return tx.Commit()
}

func replaceNames(tx *sql.Tx, table string, names []string) error {
	if _, err := tx.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
		return err
	}

	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s (id, name) VALUES (?, ?)", table))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, name := range names {
		if _, err := stmt.Exec(i, name); err != nil {
			return err
		}
	}

	return nil
}

// ImportJou replaces all players with those in j
func (db *Database) ImportJou(j *wthor.Jou) error {
	names := make([]string, len(j.Players))
	for i, p := range j.Players {
		names[i] = p.String()
	}

	return db.transaction(func(tx *sql.Tx) error {
		return replaceNames(tx, "player", names)
	})
}

// ImportTrn replaces all tournaments with those in t
func (db *Database) ImportTrn(t *wthor.Trn) error {
	names := make([]string, len(t.Tournaments))
	for i, n := range t.Tournaments {
		names[i] = n.String()
	}

	return db.transaction(func(tx *sql.Tx) error {
		return replaceNames(tx, "tournament", names)
	})
}

// ImportWtb replaces any games for the same year with those in w
func (db *Database) ImportWtb(w *wthor.Wtb) error {
	return db.transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM game WHERE year = ?", w.Year); err != nil {
			return err
		}

		stmt, err := tx.Prepare("INSERT INTO game (year, tournament_id, black_id, white_id, score, theoretical_score, depth, moves) VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, g := range w.Games {
			if _, err := stmt.Exec(w.Year, g.Tournament, g.BlackPlayer, g.WhitePlayer, g.Score, g.TheoreticalScore, w.Depth(), g.Moves.List()); err != nil {
				return err
			}
		}

		return nil
	})
}

// CountGames returns the number of games stored for the passed year
func (db *Database) CountGames(year int) (int, error) {
	var n int
	if err := db.db.QueryRow("SELECT COUNT(*) FROM game WHERE year = ?", year).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// FindGamesByPlayer returns every game where the named player played
// either colour, ordered by year
func (db *Database) FindGamesByPlayer(name string) ([]Game, error) {
	rows, err := db.db.Query(`SELECT g.year, t.name, b.name, w.name, g.score, g.theoretical_score, g.moves
		FROM game AS g
		LEFT JOIN tournament AS t ON g.tournament_id = t.id
		LEFT JOIN player AS b ON g.black_id = b.id
		LEFT JOIN player AS w ON g.white_id = w.id
		WHERE b.name = ? OR w.name = ?
		ORDER BY g.year, g.id`, name, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []Game
	for rows.Next() {
		var g Game
		var tournament, black, white sql.NullString
		if err := rows.Scan(&g.Year, &tournament, &black, &white, &g.Score, &g.TheoreticalScore, &g.Moves); err != nil {
			return nil, err
		}
		g.Tournament = tournament.String
		g.BlackPlayer = black.String
		g.WhitePlayer = white.String
		games = append(games, g)
	}

	return games, rows.Err()
}
