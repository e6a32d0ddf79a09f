package domain

import (
	"path/filepath"

	"go.trai.ch/zerr"
)

// WatchedResource is a canonicalized source file together with the directory
// registered with the watch service on its behalf. Some watch backends can
// only observe directories, which is why the directory is kept separately.
type WatchedResource struct {
	path InternedString
	dir  InternedString
}

// NewWatchedResource canonicalizes path: it is made absolute and symlinks are
// resolved. The file must exist.
func NewWatchedResource(path string) (WatchedResource, error) {
	if path == "" {
		return WatchedResource{}, ErrMissingResource
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return WatchedResource{}, zerr.With(Because(ErrResourceNotFound, err), "path", path)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return WatchedResource{}, zerr.With(Because(ErrResourceNotFound, err), "path", path)
	}

	return WatchedResource{
		path: NewInternedString(resolved),
		dir:  NewInternedString(filepath.Dir(resolved)),
	}, nil
}

// Path returns the canonical absolute path of the resource.
func (r WatchedResource) Path() string {
	return r.path.String()
}

// Dir returns the directory containing the resource.
func (r WatchedResource) Dir() string {
	return r.dir.String()
}

// Matches reports whether path names this resource exactly.
func (r WatchedResource) Matches(path string) bool {
	return NewInternedString(filepath.Clean(path)) == r.path
}

// String implements fmt.Stringer.
func (r WatchedResource) String() string {
	return r.Path()
}

// UniqueDirs returns the containing directories of resources, deduplicated,
// in first-seen order.
func UniqueDirs(resources []WatchedResource) []string {
	seen := make(map[InternedString]struct{}, len(resources))
	dirs := make([]string, 0, len(resources))
	for _, r := range resources {
		if _, ok := seen[r.dir]; ok {
			continue
		}
		seen[r.dir] = struct{}{}
		dirs = append(dirs, r.Dir())
	}
	return dirs
}
