package storage

// StoreError is a sentinel error the store implementations share.
type StoreError string

func (e StoreError) Error() string {
	return string(e)
}

const (
	// ErrDuplicateURL signals a unique-URL conflict on insert. The
	// aggregation pipeline treats it as "already have this one", not a
	// failure.
	ErrDuplicateURL StoreError = "article with this url already exists"
)
