package domain

import (
	"fmt"
	"time"
)

// Group is a GitLab group as returned by the groups API
type Group struct {
	ID         int64  `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	WebURL     string `json:"web_url" yaml:"web_url"`
	FullPath   string `json:"full_path" yaml:"full_path"`
	Visibility string `json:"visibility" yaml:"visibility"`
	ParentID   *int64 `json:"parent_id,omitempty" yaml:"parent_id,omitempty"`
}

// Project is a GitLab project in its "simple" API representation
type Project struct {
	Name              string  `json:"name" yaml:"name"`
	WebURL            string  `json:"web_url" yaml:"web_url"`
	PathWithNamespace string  `json:"path_with_namespace" yaml:"path_with_namespace"`
	Visibility        string  `json:"visibility" yaml:"visibility"`
	LastActivityAt    *string `json:"last_activity_at" yaml:"last_activity_at,omitempty"`
}

// GroupProjects holds the projects fetched for one group
type GroupProjects struct {
	GroupID  int64     `json:"group_id"`
	Projects []Project `json:"projects"`
}

// PersonalProjects holds the projects owned by the authenticated user
type PersonalProjects struct {
	Username string    `json:"username"`
	WebURL   string    `json:"web_url"`
	Projects []Project `json:"projects"`
}

// User is the authenticated GitLab user
type User struct {
	Username string `json:"username"`
	WebURL   string `json:"web_url"`
}

// Snapshot is the raw result of one ingestion run. It is also the on-disk
// cache record.
type Snapshot struct {
	CreatedAt       int64             `json:"created_at"`
	Groups          []Group           `json:"groups"`
	ProjectsByGroup []GroupProjects   `json:"projects_by_group"`
	Personal        *PersonalProjects `json:"personal"`
}

// NewSnapshot stamps a snapshot with the given creation time
func NewSnapshot(groups []Group, projects []GroupProjects, personal *PersonalProjects, now time.Time) *Snapshot {
	return &Snapshot{
		CreatedAt:       now.Unix(),
		Groups:          groups,
		ProjectsByGroup: projects,
		Personal:        personal,
	}
}

// ProjectCount returns the number of group projects in the snapshot
func (s *Snapshot) ProjectCount() int {
	total := 0
	for _, entry := range s.ProjectsByGroup {
		total += len(entry.Projects)
	}
	return total
}

// PersonalCount returns the number of personal projects in the snapshot
func (s *Snapshot) PersonalCount() int {
	if s.Personal == nil {
		return 0
	}
	return len(s.Personal.Projects)
}

// Summary renders the status line shown after a load
func (s *Snapshot) Summary(fromCache bool) string {
	summary := fmt.Sprintf("groups: %d, projects: %d, personal: %d",
		len(s.Groups), s.ProjectCount(), s.PersonalCount())
	if fromCache {
		return "cache hit | " + summary
	}
	return summary
}

// CacheValid reports whether a snapshot created at createdAt (epoch seconds)
// is still fresh at now. Age is computed with saturating subtraction, so a
// snapshot stamped in the future counts as fresh.
func CacheValid(createdAt int64, ttl time.Duration, now time.Time) bool {
	nowSecs := now.Unix()
	if nowSecs < 0 {
		return false
	}
	age := nowSecs - createdAt
	if age < 0 {
		age = 0
	}
	return age <= int64(ttl/time.Second)
}
