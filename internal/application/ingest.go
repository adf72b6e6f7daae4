package application

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"gitlabtree/internal/domain"
	"gitlabtree/internal/ports"
)

// Acquisition is the outcome of one ingestion run
type Acquisition struct {
	Snapshot  *domain.Snapshot
	FromCache bool
}

// Status renders the summary line for the acquisition
func (a *Acquisition) Status() string {
	return a.Snapshot.Summary(a.FromCache)
}

// Ingestor runs the fetch pipeline: cache, groups, per-group projects, the
// personal namespace, then a cache write
type Ingestor struct {
	source  ports.CatalogSource
	cache   *Cache
	perPage int
	log     *logrus.Entry
}

// NewIngestor creates an ingestor. cache may be nil to disable caching.
func NewIngestor(source ports.CatalogSource, cache *Cache, perPage int, log *logrus.Entry) *Ingestor {
	if perPage <= 0 {
		perPage = 100
	}
	return &Ingestor{
		source:  source,
		cache:   cache,
		perPage: perPage,
		log:     orDiscard(log),
	}
}

// Acquire returns the cached snapshot when it is fresh and fetches a new one
// otherwise
func (i *Ingestor) Acquire(ctx context.Context) (*Acquisition, error) {
	if i.cache != nil {
		if snapshot, ok := i.cache.Load(); ok {
			i.log.WithField("location", i.cache.Location()).Info("using cached catalog")
			return &Acquisition{Snapshot: snapshot, FromCache: true}, nil
		}
	}
	return i.Refresh(ctx)
}

// Refresh fetches the whole catalog without consulting the cache. Group and
// project failures abort the run, as does cancellation at any step; other
// personal namespace and cache write failures are logged and ignored.
func (i *Ingestor) Refresh(ctx context.Context) (*Acquisition, error) {
	started := time.Now()

	groups, err := collectPages(ctx, i.perPage, i.source.ListGroups)
	if err != nil {
		return nil, &FetchError{Op: "fetch groups", Err: err}
	}

	projects := make([]domain.GroupProjects, 0, len(groups))
	for _, g := range groups {
		list, err := collectPages(ctx, i.perPage, func(ctx context.Context, req ports.PageRequest) (ports.Page[domain.Project], error) {
			return i.source.ListGroupProjects(ctx, g.ID, req)
		})
		if err != nil {
			return nil, &FetchError{Op: fmt.Sprintf("fetch projects for group %d", g.ID), Err: err}
		}
		projects = append(projects, domain.GroupProjects{GroupID: g.ID, Projects: list})
	}

	personal := i.fetchPersonal(ctx)
	if err := ctx.Err(); err != nil {
		// An abandoned run must not cache a snapshot missing its personal root
		return nil, &FetchError{Op: "fetch personal namespace", Err: err}
	}

	snapshot := domain.NewSnapshot(groups, projects, personal, i.now())
	if i.cache != nil {
		if err := i.cache.Store(snapshot); err != nil {
			i.log.WithError(err).Warn("failed to write cache")
		}
	}

	i.log.WithFields(logrus.Fields{
		"groups":   len(groups),
		"projects": snapshot.ProjectCount(),
		"personal": snapshot.PersonalCount(),
		"elapsed":  time.Since(started).Round(time.Millisecond),
	}).Info("catalog fetched")

	return &Acquisition{Snapshot: snapshot}, nil
}

func (i *Ingestor) fetchPersonal(ctx context.Context) *domain.PersonalProjects {
	user, err := i.source.CurrentUser(ctx)
	if err != nil {
		i.log.WithError(err).Warn("skipping personal namespace: user lookup failed")
		return nil
	}

	owned, err := collectPages(ctx, i.perPage, i.source.ListOwnedProjects)
	if err != nil {
		i.log.WithError(err).Warn("skipping personal namespace: owned projects fetch failed")
		return nil
	}

	return &domain.PersonalProjects{
		Username: user.Username,
		WebURL:   user.WebURL,
		Projects: owned,
	}
}

func (i *Ingestor) now() time.Time {
	if i.cache != nil {
		return i.cache.Now()
	}
	return time.Now()
}

// collectPages follows NextPage from page 1 until the source reports the
// last page. A next page that does not advance also ends the walk.
func collectPages[T any](ctx context.Context, perPage int, fetch func(context.Context, ports.PageRequest) (ports.Page[T], error)) ([]T, error) {
	var all []T
	page := 1
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		resp, err := fetch(ctx, ports.PageRequest{Page: page, PerPage: perPage})
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		all = append(all, resp.Items...)
		if resp.NextPage <= page {
			return all, nil
		}
		page = resp.NextPage
	}
}
