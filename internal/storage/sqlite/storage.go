// Package sqlite provides a SQLite-backed Store implementation.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"tally/internal/budget"
)

// ErrNotFound indicates a row that does not exist.
var ErrNotFound = errors.New("not found")

const schemaSQL = `
CREATE TABLE IF NOT EXISTS targets (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	default_amount INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS target_amounts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	target INTEGER NOT NULL,
	amount INTEGER NOT NULL,
	year INTEGER NOT NULL,
	month INTEGER NOT NULL,
	UNIQUE (target, year, month),
	FOREIGN KEY (target) REFERENCES targets (id)
);
CREATE TABLE IF NOT EXISTS entries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	date TEXT NOT NULL,
	amount INTEGER NOT NULL,
	target INTEGER NOT NULL,
	note TEXT NOT NULL DEFAULT '',
	FOREIGN KEY (target) REFERENCES targets (id)
);
CREATE TABLE IF NOT EXISTS shortcuts (
	shortform TEXT PRIMARY KEY,
	command TEXT NOT NULL
);
`

// Storage implements the storage.Store interface on a SQLite database.
type Storage struct {
	db *sql.DB
}

// New opens (and if needed creates) the database at dbPath.
func New(dbPath string) (*Storage, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("sqlite storage: db path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite storage: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: open db: %w", err)
	}

	s := &Storage{db: db}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the underlying SQLite connection.
func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Storage) init() error {
	if _, err := s.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("sqlite storage: set busy timeout: %w", err)
	}

	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("sqlite storage: create schema: %w", err)
	}

	return nil
}

// AddEntry inserts an entry and returns its assigned ID.
func (s *Storage) AddEntry(e budget.Entry) (int, error) {
	res, err := s.db.Exec(
		"INSERT INTO entries (date, amount, target, note) VALUES (?, ?, ?, ?)",
		e.Date.Format(budget.DateLayout), e.Amount, e.TargetID, e.Note,
	)
	if err != nil {
		return 0, fmt.Errorf("sqlite storage: add entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("sqlite storage: add entry: %w", err)
	}
	return int(id), nil
}

func (s *Storage) UpdateEntry(e budget.Entry) error {
	res, err := s.db.Exec(
		"UPDATE entries SET date = ?, amount = ?, target = ?, note = ? WHERE id = ?",
		e.Date.Format(budget.DateLayout), e.Amount, e.TargetID, e.Note, e.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite storage: update entry: %w", err)
	}
	return affectedOne(res, "update entry", e.ID)
}

func (s *Storage) DeleteEntry(id int) error {
	res, err := s.db.Exec("DELETE FROM entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("sqlite storage: delete entry: %w", err)
	}
	return affectedOne(res, "delete entry", id)
}

// Entries returns entries matching the filter in insertion order.
func (s *Storage) Entries(f budget.EntryFilter) ([]budget.Entry, error) {
	query := `SELECT e.id, e.date, e.amount, e.target, e.note
	FROM entries AS e
	INNER JOIN targets ON e.target = targets.id
	WHERE e.date LIKE ?`
	args := []any{f.Frame.LikePattern()}

	switch f.Category {
	case budget.CategoryExpense:
		query += " AND e.amount < 0"
	case budget.CategoryIncome:
		query += " AND e.amount >= 0"
	}

	if len(f.Targets) > 0 {
		query += " AND targets.name IN (?" + strings.Repeat(", ?", len(f.Targets)-1) + ")"
		for _, name := range f.Targets {
			args = append(args, name)
		}
	}

	query += " ORDER BY e.id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: list entries: %w", err)
	}
	defer rows.Close()

	var result []budget.Entry
	for rows.Next() {
		var e budget.Entry
		var date string
		if err := rows.Scan(&e.ID, &date, &e.Amount, &e.TargetID, &e.Note); err != nil {
			return nil, fmt.Errorf("sqlite storage: scan entry: %w", err)
		}
		e.Date, err = time.Parse(budget.DateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("sqlite storage: entry %d: bad date %q", e.ID, date)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite storage: list entries: %w", err)
	}
	return result, nil
}

func (s *Storage) SumEntries(targetID int, frame budget.TimeFrame) (int, error) {
	var sum int
	err := s.db.QueryRow(
		"SELECT COALESCE(SUM(amount), 0) FROM entries WHERE date LIKE ? AND target = ?",
		frame.LikePattern(), targetID,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sqlite storage: sum entries: %w", err)
	}
	return sum, nil
}

// AddTarget inserts a target and returns its assigned ID.
func (s *Storage) AddTarget(t budget.Target) (int, error) {
	res, err := s.db.Exec(
		"INSERT INTO targets (name, default_amount) VALUES (?, ?)",
		t.Name, t.DefaultAmount,
	)
	if err != nil {
		return 0, fmt.Errorf("sqlite storage: add target: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("sqlite storage: add target: %w", err)
	}
	return int(id), nil
}

func (s *Storage) UpdateTarget(t budget.Target) error {
	res, err := s.db.Exec(
		"UPDATE targets SET name = ?, default_amount = ? WHERE id = ?",
		t.Name, t.DefaultAmount, t.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite storage: update target: %w", err)
	}
	return affectedOne(res, "update target", t.ID)
}

func (s *Storage) DeleteTarget(id int) error {
	res, err := s.db.Exec("DELETE FROM targets WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("sqlite storage: delete target: %w", err)
	}
	return affectedOne(res, "delete target", id)
}

func (s *Storage) Targets() ([]budget.Target, error) {
	rows, err := s.db.Query("SELECT id, name, default_amount FROM targets ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: list targets: %w", err)
	}
	defer rows.Close()

	var result []budget.Target
	for rows.Next() {
		var t budget.Target
		if err := rows.Scan(&t.ID, &t.Name, &t.DefaultAmount); err != nil {
			return nil, fmt.Errorf("sqlite storage: scan target: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite storage: list targets: %w", err)
	}
	return result, nil
}

func (s *Storage) TargetByName(name string) (budget.Target, error) {
	var t budget.Target
	err := s.db.QueryRow(
		"SELECT id, name, default_amount FROM targets WHERE name = ?", name,
	).Scan(&t.ID, &t.Name, &t.DefaultAmount)
	if errors.Is(err, sql.ErrNoRows) {
		return budget.Target{}, fmt.Errorf("sqlite storage: target %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return budget.Target{}, fmt.Errorf("sqlite storage: get target: %w", err)
	}
	return t, nil
}

func (s *Storage) TargetUsage(id int) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM entries WHERE target = ?", id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("sqlite storage: target usage: %w", err)
	}
	return count, nil
}

func (s *Storage) SetMonthAmount(targetID, year int, month budget.Month, amount int) error {
	_, err := s.db.Exec(
		`INSERT INTO target_amounts (target, amount, year, month) VALUES (?, ?, ?, ?)
		ON CONFLICT (target, year, month) DO UPDATE SET amount = excluded.amount`,
		targetID, amount, year, int(month),
	)
	if err != nil {
		return fmt.Errorf("sqlite storage: set month amount: %w", err)
	}
	return nil
}

func (s *Storage) MonthAmount(targetID, year int, month budget.Month) (int, bool, error) {
	var amount int
	err := s.db.QueryRow(
		"SELECT amount FROM target_amounts WHERE target = ? AND year = ? AND month = ?",
		targetID, year, int(month),
	).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("sqlite storage: get month amount: %w", err)
	}
	return amount, true, nil
}

func (s *Storage) MonthAmounts(targetID, year int) (map[budget.Month]int, error) {
	rows, err := s.db.Query(
		"SELECT month, amount FROM target_amounts WHERE target = ? AND year = ?",
		targetID, year,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: list month amounts: %w", err)
	}
	defer rows.Close()

	result := make(map[budget.Month]int)
	for rows.Next() {
		var month, amount int
		if err := rows.Scan(&month, &amount); err != nil {
			return nil, fmt.Errorf("sqlite storage: scan month amount: %w", err)
		}
		result[budget.Month(month)] = amount
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite storage: list month amounts: %w", err)
	}
	return result, nil
}

func (s *Storage) Shortcuts() (map[string]string, error) {
	rows, err := s.db.Query("SELECT shortform, command FROM shortcuts")
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: list shortcuts: %w", err)
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var short, full string
		if err := rows.Scan(&short, &full); err != nil {
			return nil, fmt.Errorf("sqlite storage: scan shortcut: %w", err)
		}
		result[short] = full
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite storage: list shortcuts: %w", err)
	}
	return result, nil
}

func (s *Storage) PutShortcut(short, full string) error {
	_, err := s.db.Exec(
		`INSERT INTO shortcuts (shortform, command) VALUES (?, ?)
		ON CONFLICT (shortform) DO UPDATE SET command = excluded.command`,
		short, full,
	)
	if err != nil {
		return fmt.Errorf("sqlite storage: put shortcut: %w", err)
	}
	return nil
}

func (s *Storage) DeleteShortcut(short string) error {
	res, err := s.db.Exec("DELETE FROM shortcuts WHERE shortform = ?", short)
	if err != nil {
		return fmt.Errorf("sqlite storage: delete shortcut: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite storage: delete shortcut: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("sqlite storage: shortcut %q: %w", short, ErrNotFound)
	}
	return nil
}

func affectedOne(res sql.Result, op string, id int) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite storage: %s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("sqlite storage: %s: %w: id %d", op, ErrNotFound, id)
	}
	return nil
}
