package store

import (
	"context"
	"fmt"
	"strings"

	"entgo.io/ent"
	entann "entgo.io/ent/dialect/entsql"
	entsql "entgo.io/ent/dialect/sql"
	sqlschema "entgo.io/ent/dialect/sql/schema"

	"github.com/abhisek/ndscreen/ent/schema"
)

// Tables returns the SQL tables described by the ent schemas.
func Tables() ([]*sqlschema.Table, error) {
	var tables []*sqlschema.Table
	for _, s := range []ent.Interface{schema.Entry{}, schema.Backup{}} {
		t, err := tableOf(s)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

// tableOf builds a table from a schema's fields, indexes and table
// annotation. A field named "id" is the primary key.
func tableOf(s ent.Interface) (*sqlschema.Table, error) {
	var name string
	for _, a := range s.Annotations() {
		switch a := a.(type) {
		case entann.Annotation:
			name = a.Table
		case *entann.Annotation:
			name = a.Table
		}
	}
	if name == "" {
		return nil, fmt.Errorf("schema %T: no table annotation", s)
	}

	t := sqlschema.NewTable(name)
	columns := make(map[string]string)
	for _, f := range s.Fields() {
		d := f.Descriptor()
		if d.Err != nil {
			return nil, fmt.Errorf("%s.%s: %w", name, d.Name, d.Err)
		}
		col := &sqlschema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Unique:   d.Unique,
			Nullable: d.Optional || d.Nillable,
			Comment:  d.Comment,
		}
		if d.StorageKey != "" {
			col.Name = d.StorageKey
		}
		columns[d.Name] = col.Name
		if d.Name == "id" {
			t.AddPrimary(col)
		} else {
			t.AddColumn(col)
		}
	}
	if len(t.PrimaryKey) == 0 {
		return nil, fmt.Errorf("table %s: no id field", name)
	}

	for _, idx := range s.Indexes() {
		d := idx.Descriptor()
		cols := make([]string, len(d.Fields))
		for i, f := range d.Fields {
			c, ok := columns[f]
			if !ok {
				return nil, fmt.Errorf("table %s: index on unknown field %q", name, f)
			}
			cols[i] = c
		}
		key := d.StorageKey
		if key == "" {
			key = name + "_" + strings.Join(cols, "_")
		}
		t.AddIndex(key, d.Unique, cols)
	}
	return t, nil
}

// migrate creates or updates the tables. Existing columns and data are
// never dropped.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	tables, err := Tables()
	if err != nil {
		return err
	}
	m, err := sqlschema.NewMigrate(drv)
	if err != nil {
		return err
	}
	return m.Create(ctx, tables...)
}
