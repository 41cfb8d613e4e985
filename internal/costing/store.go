// Package costing writes cutlist summaries into the quote line-item store.
// Each exported line occupies a named slot (one per material/role) so a
// re-export can find and re-point its own lines without touching lines other
// tools added to the same quote.
package costing

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store wraps the SQLite quote line-item database.
type Store struct {
	*sql.DB
}

// Open opens (and if needed initializes) the line-item database.
func Open(dataSourceName string) (*Store, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("open costing db: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	schema := `
CREATE TABLE IF NOT EXISTS line_items (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    item_id TEXT NOT NULL,
    slot TEXT NOT NULL,
    description TEXT NOT NULL,
    component_ref TEXT,
    quantity REAL NOT NULL,
    unit TEXT NOT NULL,
    unit_cost REAL NOT NULL,
    total_cost REAL NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_line_items_item ON line_items(item_id);
CREATE INDEX IF NOT EXISTS idx_line_items_slot ON line_items(item_id, slot);
`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init costing schema: %w", err)
	}

	return &Store{db}, nil
}

// Line is one quote line item.
type Line struct {
	ID           int64
	ItemID       string
	Slot         string
	Description  string
	ComponentRef string
	Quantity     float64
	Unit         string
	UnitCost     float64
	TotalCost    float64
}

// insert writes a line and returns its id.
func (s *Store) insert(tx *sql.Tx, l Line) (int64, error) {
	res, err := tx.Exec(`
        INSERT INTO line_items (item_id, slot, description, component_ref, quantity, unit, unit_cost, total_cost)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ItemID, l.Slot, l.Description, l.ComponentRef, l.Quantity, l.Unit, l.UnitCost, l.TotalCost)
	if err != nil {
		return 0, fmt.Errorf("insert line %s/%s: %w", l.ItemID, l.Slot, err)
	}
	return res.LastInsertId()
}

// Lines returns all lines for an item ordered by slot.
func (s *Store) Lines(itemID string) ([]Line, error) {
	rows, err := s.Query(`
        SELECT id, item_id, slot, description, component_ref, quantity, unit, unit_cost, total_cost
        FROM line_items WHERE item_id = ? ORDER BY slot, id`, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Line
	for rows.Next() {
		var l Line
		var ref sql.NullString
		if err := rows.Scan(&l.ID, &l.ItemID, &l.Slot, &l.Description, &ref, &l.Quantity, &l.Unit, &l.UnitCost, &l.TotalCost); err != nil {
			return nil, err
		}
		l.ComponentRef = ref.String
		out = append(out, l)
	}
	return out, rows.Err()
}
