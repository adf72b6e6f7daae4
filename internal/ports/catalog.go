package ports

import (
	"context"

	"gitlabtree/internal/domain"
)

// PageRequest asks for one page of a paginated listing. Pages start at 1.
type PageRequest struct {
	Page    int
	PerPage int
}

// Page is one page of records. NextPage is 0 on the last page.
type Page[T any] struct {
	Items    []T
	NextPage int
}

// CatalogSource is the remote catalog the ingestion pipeline reads from.
// Implementations surface transport failures and non-success statuses as
// errors; they never return partial pages.
type CatalogSource interface {
	// ListGroups returns the groups the authenticated user is a member of
	ListGroups(ctx context.Context, req PageRequest) (Page[domain.Group], error)

	// ListGroupProjects returns the projects that belong to one group
	ListGroupProjects(ctx context.Context, groupID int64, req PageRequest) (Page[domain.Project], error)

	// ListOwnedProjects returns the projects owned by the authenticated user
	ListOwnedProjects(ctx context.Context, req PageRequest) (Page[domain.Project], error)

	// CurrentUser looks up the authenticated user
	CurrentUser(ctx context.Context) (domain.User, error)
}
