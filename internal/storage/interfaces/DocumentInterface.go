package interfaces

// Document is a whole-file resource: a record array plus derived stats.
type Document interface {
	// Reset puts the document into its empty default shape.
	Reset()
	// DeriveStats recomputes the stats from the records.
	DeriveStats()
	Count() int
}

// Seeder is implemented by documents that get example content when their
// file is first created.
type Seeder interface {
	Seed()
}

type DocumentStore interface {
	Load(key string, doc Document)
	Save(key string, doc Document) error
	Update(key string, doc Document, mutate func() error) error
}
