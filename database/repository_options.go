package database

// RepositoryOptions enables the timestamp fields a repository manages on its own.
// Deleted turns deletes into soft deletes and hides soft-deleted documents from
// updates.
type RepositoryOptions struct {
	Created  bool
	Modified bool
	Deleted  bool

	// DefaultWriteOption applies to updates whose options carry no write option.
	DefaultWriteOption *WriteOption
}
