// Package persistence provides SQLite storage for simulation runs: the run
// record, the per-year metric histories, and the final roster snapshot.
package persistence

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/popsim/internal/sim"
)

// DB wraps a SQLite connection for run persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		scenario TEXT NOT NULL,
		seed INTEGER NOT NULL,
		years INTEGER NOT NULL,
		final_population INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS metrics (
		run_id TEXT NOT NULL,
		year INTEGER NOT NULL,
		births INTEGER NOT NULL,
		deaths INTEGER NOT NULL,
		population INTEGER NOT NULL,
		mean_age REAL NOT NULL,
		PRIMARY KEY (run_id, year)
	);

	CREATE TABLE IF NOT EXISTS persons (
		run_id TEXT NOT NULL,
		person_id INTEGER NOT NULL,
		genome_w0 INTEGER NOT NULL,
		genome_w1 INTEGER NOT NULL,
		age INTEGER NOT NULL,
		sex INTEGER NOT NULL,
		married INTEGER NOT NULL,
		partner_id INTEGER,
		PRIMARY KEY (run_id, person_id)
	);

	CREATE INDEX IF NOT EXISTS idx_metrics_run ON metrics(run_id);
	CREATE INDEX IF NOT EXISTS idx_persons_run ON persons(run_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Run is a stored simulation run record.
type Run struct {
	ID              string    `db:"id"`
	Scenario        string    `db:"scenario"`
	Seed            uint64    `db:"seed"`
	Years           uint32    `db:"years"`
	FinalPopulation int       `db:"final_population"`
	CreatedAt       time.Time `db:"created_at"`
}

// YearMetrics is one year's row of the metric histories.
type YearMetrics struct {
	RunID      string  `db:"run_id"`
	Year       int     `db:"year"`
	Births     int     `db:"births"`
	Deaths     int     `db:"deaths"`
	Population int     `db:"population"`
	MeanAge    float64 `db:"mean_age"`
}

// SaveRun writes the run record, its full metric histories, and the final
// roster snapshot in one transaction. An existing run with the same id is
// replaced.
func (db *DB) SaveRun(run Run, pop *sim.Population) error {
	slog.Info("saving run", "id", run.ID, "scenario", run.Scenario,
		"years", run.Years, "population", len(pop.Persons()))

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM metrics WHERE run_id = ?", run.ID); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM persons WHERE run_id = ?", run.ID); err != nil {
		return err
	}

	_, err = tx.Exec(`INSERT OR REPLACE INTO runs
		(id, scenario, seed, years, final_population, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Scenario, int64(run.Seed), run.Years,
		len(pop.Persons()), run.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	if err := saveMetrics(tx, run.ID, pop); err != nil {
		return err
	}
	if err := savePersons(tx, run.ID, pop.Persons()); err != nil {
		return err
	}

	return tx.Commit()
}

func saveMetrics(tx *sqlx.Tx, runID string, pop *sim.Population) error {
	stmt, err := tx.Preparex(`INSERT INTO metrics
		(run_id, year, births, deaths, population, mean_age)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	births := pop.BirthsHistory()
	deaths := pop.DeathsHistory()
	popHist := pop.PopulationHistory()
	meanAge := pop.MeanAgeHistory()

	for year := range popHist {
		_, err := stmt.Exec(runID, year+1, births[year], deaths[year], popHist[year], meanAge[year])
		if err != nil {
			return fmt.Errorf("insert metrics year %d: %w", year+1, err)
		}
	}
	return nil
}

func savePersons(tx *sqlx.Tx, runID string, people []sim.Person) error {
	stmt, err := tx.Preparex(`INSERT INTO persons
		(run_id, person_id, genome_w0, genome_w1, age, sex, married, partner_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range people {
		p := &people[i]
		married := 0
		var partner any
		if id, ok := p.Marital.Partner(); ok {
			married = 1
			partner = int64(id)
		}
		// SQLite integers are signed 64-bit; genome words are stored as
		// their two's-complement image and mapped back on load.
		_, err := stmt.Exec(runID, int64(p.ID), int64(p.Genome.W0), int64(p.Genome.W1),
			p.Age, p.Sex, married, partner)
		if err != nil {
			return fmt.Errorf("insert person %d: %w", p.ID, err)
		}
	}
	return nil
}

// RecentRuns returns the most recent runs, newest first.
func (db *DB) RecentRuns(limit int) ([]Run, error) {
	rows, err := db.conn.Queryx(
		`SELECT id, scenario, seed, years, final_population, created_at
		 FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r       Run
			seed    int64
			created string
		)
		if err := rows.Scan(&r.ID, &r.Scenario, &seed, &r.Years, &r.FinalPopulation, &created); err != nil {
			return nil, err
		}
		r.Seed = uint64(seed)
		if t, err := time.Parse(time.RFC3339, created); err == nil {
			r.CreatedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// LoadMetrics returns a run's metric rows in year order.
func (db *DB) LoadMetrics(runID string) ([]YearMetrics, error) {
	var metrics []YearMetrics
	err := db.conn.Select(&metrics,
		`SELECT run_id, year, births, deaths, population, mean_age
		 FROM metrics WHERE run_id = ? ORDER BY year`, runID)
	return metrics, err
}

// LoadPersons returns a run's final roster snapshot in person id order.
func (db *DB) LoadPersons(runID string) ([]sim.Person, error) {
	rows, err := db.conn.Queryx(
		`SELECT person_id, genome_w0, genome_w1, age, sex, married, partner_id
		 FROM persons WHERE run_id = ? ORDER BY person_id`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var people []sim.Person
	for rows.Next() {
		var (
			id, w0, w1 int64
			age        uint32
			sex        uint8
			married    int
			partner    *int64
		)
		if err := rows.Scan(&id, &w0, &w1, &age, &sex, &married, &partner); err != nil {
			return nil, err
		}
		p := sim.Person{
			ID:      sim.PersonID(id),
			Genome:  sim.Genome{W0: uint64(w0), W1: uint64(w1)},
			Age:     age,
			Sex:     sim.Sex(sex),
			Marital: sim.Unmarried(),
		}
		if married == 1 && partner != nil {
			p.Marital = sim.MarriedTo(sim.PersonID(*partner))
		}
		people = append(people, p)
	}
	return people, rows.Err()
}
