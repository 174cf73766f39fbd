package domain

import "context"

// Compilation is a curated, optionally pinned, set of events.
type Compilation struct {
	ID     int64
	Title  string
	Pinned bool
	Events []*Event
}

// NewCompilationInput carries the fields of a new compilation.
type NewCompilationInput struct {
	Title    string
	Pinned   bool
	EventIDs []int64
}

// UpdateCompilationInput is a partial update. A non-nil EventIDs replaces the event set.
type UpdateCompilationInput struct {
	Title    *string
	Pinned   *bool
	EventIDs *[]int64
}

// CompilationRepository defines the interface for compilation storage.
// Events of returned compilations carry only their stored columns.
type CompilationRepository interface {
	Create(ctx context.Context, c *Compilation, eventIDs []int64) error
	GetByID(ctx context.Context, id int64) (*Compilation, error)
	List(ctx context.Context, pinned *bool, page PaginationParams) ([]*Compilation, error)
	Update(ctx context.Context, c *Compilation) error
	ReplaceEvents(ctx context.Context, id int64, eventIDs []int64) error
	Delete(ctx context.Context, id int64) error
}

// CompilationService defines compilation operations for admin and public callers.
type CompilationService interface {
	CreateCompilation(ctx context.Context, in NewCompilationInput) (*Compilation, error)
	UpdateCompilation(ctx context.Context, id int64, in UpdateCompilationInput) (*Compilation, error)
	DeleteCompilation(ctx context.Context, id int64) error
	GetCompilation(ctx context.Context, id int64) (*Compilation, error)
	ListCompilations(ctx context.Context, pinned *bool, page PaginationParams) ([]*Compilation, error)
}
