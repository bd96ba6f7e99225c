package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Backup is an encoded snapshot of the whole session, taken before an
// import or restore replaces it.
type Backup struct {
	ent.Schema
}

func (Backup) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "backups"},
	}
}

func (Backup) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			NotEmpty().
			Immutable().
			Comment("UUID"),
		field.String("reason").
			Comment("import or restore"),
		field.Int64("revision").
			Comment("Entries revision at the time of the backup"),
		field.Int64("created_at").
			Immutable().
			Comment("Unix milliseconds"),
		field.Bytes("data").
			Comment("Snapshot document"),
	}
}

func (Backup) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("created_at").
			StorageKey("backups_created_at"),
	}
}
