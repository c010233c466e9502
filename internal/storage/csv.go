package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"tally/internal/budget"
)

// Backing file names inside the state directory.
const (
	entriesFileName   = "entries.csv"
	targetsFileName   = "targets.csv"
	amountsFileName   = "target_amounts.csv"
	shortcutsFileName = "shortcuts.csv"
)

var (
	entriesHeader   = []string{"id", "date", "amount", "target", "note"}
	targetsHeader   = []string{"id", "name", "default_amount"}
	amountsHeader   = []string{"target", "year", "month", "amount"}
	shortcutsHeader = []string{"shortform", "command"}
)

// monthKey identifies one target's pinned amount.
type monthKey struct {
	target int
	year   int
	month  budget.Month
}

// CSVStore keeps the working set in memory and rewrites the backing
// file of whatever it mutates. Files are replaced atomically, so a
// failed rewrite leaves memory ahead of disk until the next successful
// one. The store assumes single-process ownership of its directory.
type CSVStore struct {
	mu  sync.Mutex
	dir string

	entries   map[int]budget.Entry
	targets   map[int]budget.Target
	amounts   map[monthKey]int
	shortcuts map[string]string

	nextEntryID  int
	nextTargetID int
}

// NewCSVStore opens (and if needed creates) the csv files under dir and
// loads them into memory.
func NewCSVStore(dir string) (*CSVStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("csv storage: create state directory: %w", err)
	}

	s := &CSVStore{
		dir:          dir,
		entries:      make(map[int]budget.Entry),
		targets:      make(map[int]budget.Target),
		amounts:      make(map[monthKey]int),
		shortcuts:    make(map[string]string),
		nextEntryID:  1,
		nextTargetID: 1,
	}

	for _, f := range []struct {
		name   string
		header []string
		load   func([][]string) error
	}{
		{entriesFileName, entriesHeader, s.loadEntries},
		{targetsFileName, targetsHeader, s.loadTargets},
		{amountsFileName, amountsHeader, s.loadAmounts},
		{shortcutsFileName, shortcutsHeader, s.loadShortcuts},
	} {
		rows, err := s.readOrCreate(f.name, f.header)
		if err != nil {
			return nil, err
		}
		if err := f.load(rows); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Close is a no-op; every mutation is flushed as it happens.
func (s *CSVStore) Close() error { return nil }

func (s *CSVStore) AddEntry(e budget.Entry) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = s.nextEntryID
	s.nextEntryID++
	s.entries[e.ID] = e
	return e.ID, s.writeEntries()
}

func (s *CSVStore) UpdateEntry(e budget.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[e.ID]; !ok {
		return fmt.Errorf("csv storage: entry %d: %w", e.ID, ErrNotFound)
	}
	s.entries[e.ID] = e
	return s.writeEntries()
}

func (s *CSVStore) DeleteEntry(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return fmt.Errorf("csv storage: entry %d: %w", id, ErrNotFound)
	}
	delete(s.entries, id)
	return s.writeEntries()
}

func (s *CSVStore) Entries(f budget.EntryFilter) ([]budget.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var wantTargets map[int]bool
	if len(f.Targets) > 0 {
		wantTargets = make(map[int]bool)
		for _, name := range f.Targets {
			for id, t := range s.targets {
				if t.Name == name {
					wantTargets[id] = true
				}
			}
		}
	}

	var result []budget.Entry
	for _, e := range s.entries {
		if !f.Frame.Contains(e.Date) {
			continue
		}
		if f.Category != "" && e.Category() != f.Category {
			continue
		}
		if wantTargets != nil && !wantTargets[e.TargetID] {
			continue
		}
		result = append(result, e)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *CSVStore) SumEntries(targetID int, frame budget.TimeFrame) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := 0
	for _, e := range s.entries {
		if e.TargetID == targetID && frame.Contains(e.Date) {
			sum += e.Amount
		}
	}
	return sum, nil
}

func (s *CSVStore) AddTarget(t budget.Target) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.targets {
		if existing.Name == t.Name {
			return 0, fmt.Errorf("csv storage: target %q already exists", t.Name)
		}
	}
	t.ID = s.nextTargetID
	s.nextTargetID++
	s.targets[t.ID] = t
	return t.ID, s.writeTargets()
}

func (s *CSVStore) UpdateTarget(t budget.Target) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.targets[t.ID]; !ok {
		return fmt.Errorf("csv storage: target %d: %w", t.ID, ErrNotFound)
	}
	for id, existing := range s.targets {
		if id != t.ID && existing.Name == t.Name {
			return fmt.Errorf("csv storage: target %q already exists", t.Name)
		}
	}
	s.targets[t.ID] = t
	return s.writeTargets()
}

func (s *CSVStore) DeleteTarget(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.targets[id]; !ok {
		return fmt.Errorf("csv storage: target %d: %w", id, ErrNotFound)
	}
	delete(s.targets, id)
	return s.writeTargets()
}

func (s *CSVStore) Targets() ([]budget.Target, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]budget.Target, 0, len(s.targets))
	for _, t := range s.targets {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *CSVStore) TargetByName(name string) (budget.Target, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.targets {
		if t.Name == name {
			return t, nil
		}
	}
	return budget.Target{}, fmt.Errorf("csv storage: target %q: %w", name, ErrNotFound)
}

func (s *CSVStore) TargetUsage(id int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, e := range s.entries {
		if e.TargetID == id {
			count++
		}
	}
	return count, nil
}

func (s *CSVStore) SetMonthAmount(targetID, year int, month budget.Month, amount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.amounts[monthKey{targetID, year, month}] = amount
	return s.writeAmounts()
}

func (s *CSVStore) MonthAmount(targetID, year int, month budget.Month) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	amount, ok := s.amounts[monthKey{targetID, year, month}]
	return amount, ok, nil
}

func (s *CSVStore) MonthAmounts(targetID, year int) (map[budget.Month]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make(map[budget.Month]int)
	for key, amount := range s.amounts {
		if key.target == targetID && key.year == year {
			result[key.month] = amount
		}
	}
	return result, nil
}

func (s *CSVStore) Shortcuts() (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make(map[string]string, len(s.shortcuts))
	for short, full := range s.shortcuts {
		result[short] = full
	}
	return result, nil
}

func (s *CSVStore) PutShortcut(short, full string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.shortcuts[short] = full
	return s.writeShortcuts()
}

func (s *CSVStore) DeleteShortcut(short string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.shortcuts[short]; !ok {
		return fmt.Errorf("csv storage: shortcut %q: %w", short, ErrNotFound)
	}
	delete(s.shortcuts, short)
	return s.writeShortcuts()
}

func (s *CSVStore) loadEntries(rows [][]string) error {
	for _, row := range rows {
		if len(row) != len(entriesHeader) {
			return fmt.Errorf("csv storage: %s: unexpected field count %d", entriesFileName, len(row))
		}
		id, err := strconv.Atoi(row[0])
		if err != nil {
			return fmt.Errorf("csv storage: %s: bad id %q", entriesFileName, row[0])
		}
		date, err := time.Parse(budget.DateLayout, row[1])
		if err != nil {
			return fmt.Errorf("csv storage: %s: bad date %q", entriesFileName, row[1])
		}
		amount, err := strconv.Atoi(row[2])
		if err != nil {
			return fmt.Errorf("csv storage: %s: bad amount %q", entriesFileName, row[2])
		}
		targetID, err := strconv.Atoi(row[3])
		if err != nil {
			return fmt.Errorf("csv storage: %s: bad target %q", entriesFileName, row[3])
		}
		s.entries[id] = budget.Entry{ID: id, Date: date, Amount: amount, TargetID: targetID, Note: row[4]}
		if id >= s.nextEntryID {
			s.nextEntryID = id + 1
		}
	}
	return nil
}

func (s *CSVStore) loadTargets(rows [][]string) error {
	for _, row := range rows {
		if len(row) != len(targetsHeader) {
			return fmt.Errorf("csv storage: %s: unexpected field count %d", targetsFileName, len(row))
		}
		id, err := strconv.Atoi(row[0])
		if err != nil {
			return fmt.Errorf("csv storage: %s: bad id %q", targetsFileName, row[0])
		}
		amount, err := strconv.Atoi(row[2])
		if err != nil {
			return fmt.Errorf("csv storage: %s: bad amount %q", targetsFileName, row[2])
		}
		s.targets[id] = budget.Target{ID: id, Name: row[1], DefaultAmount: amount}
		if id >= s.nextTargetID {
			s.nextTargetID = id + 1
		}
	}
	return nil
}

func (s *CSVStore) loadAmounts(rows [][]string) error {
	for _, row := range rows {
		if len(row) != len(amountsHeader) {
			return fmt.Errorf("csv storage: %s: unexpected field count %d", amountsFileName, len(row))
		}
		var nums [4]int
		for i, field := range row {
			n, err := strconv.Atoi(field)
			if err != nil {
				return fmt.Errorf("csv storage: %s: bad value %q", amountsFileName, field)
			}
			nums[i] = n
		}
		s.amounts[monthKey{nums[0], nums[1], budget.Month(nums[2])}] = nums[3]
	}
	return nil
}

func (s *CSVStore) loadShortcuts(rows [][]string) error {
	for _, row := range rows {
		if len(row) != len(shortcutsHeader) {
			return fmt.Errorf("csv storage: %s: unexpected field count %d", shortcutsFileName, len(row))
		}
		s.shortcuts[row[0]] = row[1]
	}
	return nil
}

func (s *CSVStore) writeEntries() error {
	rows := make([][]string, 0, len(s.entries))
	for _, e := range s.entries {
		rows = append(rows, []string{
			strconv.Itoa(e.ID),
			e.Date.Format(budget.DateLayout),
			strconv.Itoa(e.Amount),
			strconv.Itoa(e.TargetID),
			e.Note,
		})
	}
	return s.writeFile(entriesFileName, entriesHeader, sortByNumericID(rows))
}

func (s *CSVStore) writeTargets() error {
	rows := make([][]string, 0, len(s.targets))
	for _, t := range s.targets {
		rows = append(rows, []string{strconv.Itoa(t.ID), t.Name, strconv.Itoa(t.DefaultAmount)})
	}
	return s.writeFile(targetsFileName, targetsHeader, sortByNumericID(rows))
}

func (s *CSVStore) writeAmounts() error {
	rows := make([][]string, 0, len(s.amounts))
	for key, amount := range s.amounts {
		rows = append(rows, []string{
			strconv.Itoa(key.target),
			strconv.Itoa(key.year),
			strconv.Itoa(int(key.month)),
			strconv.Itoa(amount),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		for col := 0; col < 3; col++ {
			if rows[i][col] != rows[j][col] {
				a, _ := strconv.Atoi(rows[i][col])
				b, _ := strconv.Atoi(rows[j][col])
				return a < b
			}
		}
		return false
	})
	return s.writeFile(amountsFileName, amountsHeader, rows)
}

func (s *CSVStore) writeShortcuts() error {
	rows := make([][]string, 0, len(s.shortcuts))
	for short, full := range s.shortcuts {
		rows = append(rows, []string{short, full})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i][0] < rows[j][0] })
	return s.writeFile(shortcutsFileName, shortcutsHeader, rows)
}

// writeFile replaces a backing file atomically via a temp file rename.
func (s *CSVStore) writeFile(name string, header []string, rows [][]string) error {
	tmp, err := os.CreateTemp(s.dir, name+".*")
	if err != nil {
		return fmt.Errorf("csv storage: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		return fmt.Errorf("csv storage: write %s: %w", name, err)
	}
	if err := w.WriteAll(rows); err != nil {
		tmp.Close()
		return fmt.Errorf("csv storage: write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("csv storage: write %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("csv storage: replace %s: %w", name, err)
	}
	return nil
}

// readOrCreate reads a backing file's data rows, creating the file with
// just its header when missing.
func (s *CSVStore) readOrCreate(name string, header []string) ([][]string, error) {
	path := filepath.Join(s.dir, name)
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, s.writeFile(name, header, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("csv storage: open %s: %w", name, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv storage: read %s: %w", name, err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[1:], nil
}

func sortByNumericID(rows [][]string) [][]string {
	sort.Slice(rows, func(i, j int) bool {
		a, _ := strconv.Atoi(rows[i][0])
		b, _ := strconv.Atoi(rows[j][0])
		return a < b
	})
	return rows
}
