package filetree

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/temirov/ftree/internal/filesystem"
)

const (
	// hiddenEntryPrefix marks entries that are neither listed nor descended into.
	hiddenEntryPrefix = "."
	// currentDirectoryName names a root path that has no final component.
	currentDirectoryName = "."

	debugSkipHiddenMessage     = "skipping hidden entry"
	debugEnterDirectoryMessage = "entering directory"
	pathLogField               = "path"
)

// ErrNoFileSystem is returned when a Builder is used without a FileSystem.
var ErrNoFileSystem = errors.New("filetree: builder has no filesystem")

// Builder constructs trees from a FileSystem.
// Concurrency above one lets sibling subdirectories be built in parallel; the result is identical to a sequential build.
type Builder struct {
	FileSystem  filesystem.FileSystem
	Logger      *zap.Logger
	Concurrency int
}

// Build walks rootPath depth-first and returns the fully materialized tree.
// Listing failures, metadata failures and link failures abort the whole build.
func (builder *Builder) Build(ctx context.Context, rootPath string) (*Directory, error) {
	if builder.FileSystem == nil {
		return nil, ErrNoFileSystem
	}
	if ctx == nil {
		ctx = context.Background()
	}

	walk := &treeWalk{fileSystem: builder.FileSystem, logger: builder.Logger}
	if walk.logger == nil {
		walk.logger = zap.NewNop()
	}
	if builder.Concurrency > 1 {
		walk.slots = semaphore.NewWeighted(int64(builder.Concurrency - 1))
	}
	return walk.directory(ctx, rootPath, RootName(rootPath))
}

// RootName returns the final component of rootPath, or "." when it has none.
func RootName(rootPath string) string {
	baseName := filepath.Base(filepath.Clean(rootPath))
	switch baseName {
	case currentDirectoryName, "..", string(filepath.Separator):
		return currentDirectoryName
	}
	return baseName
}

// IsHidden reports whether an entry name is hidden.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, hiddenEntryPrefix)
}

type treeWalk struct {
	fileSystem filesystem.FileSystem
	logger     *zap.Logger
	slots      *semaphore.Weighted
}

// pendingDirectory is a subdirectory whose node slot is filled after parallel descent.
type pendingDirectory struct {
	index int
	path  string
	name  string
}

func (walk *treeWalk) directory(ctx context.Context, directoryPath string, name string) (*Directory, error) {
	if contextError := ctx.Err(); contextError != nil {
		return nil, contextError
	}
	walk.logger.Debug(debugEnterDirectoryMessage, zap.String(pathLogField, directoryPath))

	children, listingError := walk.fileSystem.ListChildren(directoryPath)
	if listingError != nil {
		return nil, listingError
	}
	sort.Slice(children, func(left, right int) bool {
		return children[left].Name < children[right].Name
	})

	nodes := make([]Node, 0, len(children))
	var pending []pendingDirectory
	for _, child := range children {
		if IsHidden(child.Name) {
			walk.logger.Debug(debugSkipHiddenMessage, zap.String(pathLogField, child.Path))
			continue
		}

		kind, childInfo, classifyError := filesystem.Classify(walk.fileSystem, child.Path)
		if classifyError != nil {
			return nil, classifyError
		}

		switch kind {
		case filesystem.KindSymlink:
			target, linkError := walk.fileSystem.ReadLinkTarget(child.Path)
			if linkError != nil {
				return nil, linkError
			}
			nodes = append(nodes, &Symlink{Name: child.Name, Metadata: childInfo, Target: target})
		case filesystem.KindDirectory:
			if walk.slots == nil {
				subdirectory, buildError := walk.directory(ctx, child.Path, child.Name)
				if buildError != nil {
					return nil, buildError
				}
				nodes = append(nodes, subdirectory)
				continue
			}
			nodes = append(nodes, nil)
			pending = append(pending, pendingDirectory{index: len(nodes) - 1, path: child.Path, name: child.Name})
		case filesystem.KindFile:
			nodes = append(nodes, &File{Name: child.Name, Metadata: childInfo})
		}
	}

	if len(pending) > 0 {
		if descentError := walk.descend(ctx, nodes, pending); descentError != nil {
			return nil, descentError
		}
	}
	return &Directory{Name: name, Entries: nodes}, nil
}

// descend builds pending subdirectories, in a goroutine when a slot is free and inline otherwise.
// Each result lands at its sorted index, so completion order never affects the tree.
// The first failure, from either path, cancels the rest and is the one returned.
func (walk *treeWalk) descend(ctx context.Context, nodes []Node, pending []pendingDirectory) error {
	cancelableCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	group, groupCtx := errgroup.WithContext(cancelableCtx)

	var (
		firstErrorOnce sync.Once
		firstError     error
	)
	recordFailure := func(buildError error) {
		firstErrorOnce.Do(func() {
			firstError = buildError
			cancel()
		})
	}

	for _, subdirectory := range pending {
		subdirectory := subdirectory
		if walk.slots.TryAcquire(1) {
			group.Go(func() error {
				defer walk.slots.Release(1)
				built, buildError := walk.directory(groupCtx, subdirectory.path, subdirectory.name)
				if buildError != nil {
					recordFailure(buildError)
					return buildError
				}
				nodes[subdirectory.index] = built
				return nil
			})
			continue
		}
		built, buildError := walk.directory(groupCtx, subdirectory.path, subdirectory.name)
		if buildError != nil {
			recordFailure(buildError)
			break
		}
		nodes[subdirectory.index] = built
	}

	_ = group.Wait()
	return firstError
}
