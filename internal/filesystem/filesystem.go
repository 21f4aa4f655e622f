// Package filesystem is the boundary between tree construction and the operating system.
// Every call performs an lstat-style lookup so symbolic links are reported as links and never followed.
package filesystem

import (
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// Kind classifies a filesystem entry.
type Kind int

const (
	KindUnknown Kind = iota
	KindDirectory
	KindSymlink
	KindFile
)

const (
	kindDirectoryName = "directory"
	kindSymlinkName   = "symlink"
	kindFileName      = "file"
	kindUnknownName   = "unknown"
)

func (kind Kind) String() string {
	switch kind {
	case KindDirectory:
		return kindDirectoryName
	case KindSymlink:
		return kindSymlinkName
	case KindFile:
		return kindFileName
	default:
		return kindUnknownName
	}
}

// Entry is a direct child reported by a directory listing.
type Entry struct {
	Name string
	Path string
}

// FileSystem lists and inspects paths.
type FileSystem interface {
	ListChildren(directoryPath string) ([]Entry, error)
	ReadMetadata(entryPath string) (fs.FileInfo, error)
	ReadLinkTarget(entryPath string) (string, error)
}

// Afero implements FileSystem on top of an afero.Fs.
type Afero struct {
	backing afero.Fs
}

// NewAfero wraps the provided afero filesystem.
func NewAfero(backing afero.Fs) *Afero {
	return &Afero{backing: backing}
}

// NewOS returns a FileSystem backed by the host operating system.
func NewOS() *Afero {
	return NewAfero(afero.NewOsFs())
}

// ListChildren returns the direct children of directoryPath in listing order.
// Children that disappear between the directory read and their lstat are omitted.
func (fileSystem *Afero) ListChildren(directoryPath string) ([]Entry, error) {
	directoryInfo, statError := fileSystem.backing.Stat(directoryPath)
	if statError != nil {
		return nil, &ListingError{Path: directoryPath, Err: statError}
	}
	if !directoryInfo.IsDir() {
		return nil, &ListingError{Path: directoryPath, Err: ErrNotDirectory}
	}

	directoryHandle, openError := fileSystem.backing.Open(directoryPath)
	if openError != nil {
		return nil, &ListingError{Path: directoryPath, Err: openError}
	}
	defer func() {
		_ = directoryHandle.Close()
	}()

	childInformation, readError := directoryHandle.Readdir(-1)
	if readError != nil {
		return nil, &ListingError{Path: directoryPath, Err: readError}
	}

	entries := make([]Entry, 0, len(childInformation))
	for _, childInfo := range childInformation {
		if childInfo == nil || childInfo.Name() == "" {
			continue
		}
		entries = append(entries, Entry{
			Name: childInfo.Name(),
			Path: filepath.Join(directoryPath, childInfo.Name()),
		})
	}
	return entries, nil
}

// ReadMetadata returns the metadata of entryPath itself, without following a final symbolic link.
func (fileSystem *Afero) ReadMetadata(entryPath string) (fs.FileInfo, error) {
	var (
		entryInfo fs.FileInfo
		lstatErr  error
	)
	if lstater, supportsLstat := fileSystem.backing.(afero.Lstater); supportsLstat {
		entryInfo, _, lstatErr = lstater.LstatIfPossible(entryPath)
	} else {
		entryInfo, lstatErr = fileSystem.backing.Stat(entryPath)
	}
	if lstatErr != nil {
		return nil, &MetadataError{Path: entryPath, Err: lstatErr}
	}
	return entryInfo, nil
}

// ReadLinkTarget returns the raw target of a symbolic link without resolving it further.
func (fileSystem *Afero) ReadLinkTarget(entryPath string) (string, error) {
	linkReader, supportsReadlink := fileSystem.backing.(afero.LinkReader)
	if !supportsReadlink {
		return "", &LinkError{Path: entryPath, Err: afero.ErrNoReadlink}
	}
	target, readlinkError := linkReader.ReadlinkIfPossible(entryPath)
	if readlinkError != nil {
		return "", &LinkError{Path: entryPath, Err: readlinkError}
	}
	return target, nil
}

// Classify reads the metadata of entryPath through fileSystem and reports whether it is a
// symbolic link, a directory or a regular file, in that order. Any other type is an UnsupportedEntryError.
func Classify(fileSystem FileSystem, entryPath string) (Kind, fs.FileInfo, error) {
	entryInfo, metadataError := fileSystem.ReadMetadata(entryPath)
	if metadataError != nil {
		return KindUnknown, nil, metadataError
	}
	kind := KindOf(entryInfo)
	if kind == KindUnknown {
		return KindUnknown, nil, &UnsupportedEntryError{Path: entryPath, Mode: entryInfo.Mode().Type().String()}
	}
	return kind, entryInfo, nil
}

// KindOf classifies already fetched metadata. Symbolic links are checked first.
func KindOf(entryInfo fs.FileInfo) Kind {
	mode := entryInfo.Mode()
	switch {
	case mode&fs.ModeSymlink != 0:
		return KindSymlink
	case mode.IsDir():
		return KindDirectory
	case mode.IsRegular():
		return KindFile
	default:
		return KindUnknown
	}
}

var _ FileSystem = (*Afero)(nil)
