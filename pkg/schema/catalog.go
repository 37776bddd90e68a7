package schema

import (
	"context"
	"fmt"
	"sort"
)

// Catalog is the ordered set of records a schema document declares.
type Catalog struct {
	names   []string
	records map[string]*Record
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{records: make(map[string]*Record)}
}

// Add registers a record under name. Re-adding the same record is a no-op;
// a different record under an existing name is an error.
func (c *Catalog) Add(name string, record *Record) error {
	if name == "" {
		return fmt.Errorf("schema: catalog entry name is required")
	}
	if record == nil {
		return fmt.Errorf("schema: catalog entry %q has no record", name)
	}
	if existing, ok := c.records[name]; ok {
		if existing == record {
			return nil
		}
		return fmt.Errorf("schema: catalog entry %q already registered", name)
	}
	c.records[name] = record
	c.names = append(c.names, name)
	return nil
}

// Record returns the named record.
func (c *Catalog) Record(name string) (*Record, bool) {
	if c == nil {
		return nil, false
	}
	record, ok := c.records[name]
	return record, ok
}

// Names returns entry names in registration order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.names...)
}

// SortedNames returns entry names alphabetically.
func (c *Catalog) SortedNames() []string {
	names := c.Names()
	sort.Strings(names)
	return names
}

// Len reports the number of records.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}

// FormatAdapter turns a raw schema document into a catalog of records.
type FormatAdapter interface {
	Name() string
	Detect(src Source, raw []byte) bool
	Catalog(ctx context.Context, doc Document) (*Catalog, error)
}
