package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Entry holds one persisted piece of session state. There are four:
// profile, responses, notes and sectionNotes. Each loads independently.
type Entry struct {
	ent.Schema
}

func (Entry) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "entries"},
	}
}

func (Entry) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("name").
			NotEmpty().
			Immutable().
			Comment("Entry name"),
		field.Bytes("value").
			Comment("JSON-encoded state"),
		field.Int64("revision").
			Comment("Revision of the write that produced the value"),
		field.Int64("updated_at").
			Comment("Unix milliseconds"),
	}
}

func (Entry) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("revision"),
	}
}
