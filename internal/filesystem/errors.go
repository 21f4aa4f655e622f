package filesystem

import (
	"errors"
	"fmt"
)

const (
	listingErrorFormat     = "listing directory %s: %v"
	metadataErrorFormat    = "reading metadata for %s: %v"
	linkErrorFormat        = "reading link target for %s: %v"
	unsupportedEntryFormat = "unsupported entry type %s at %s"
)

// ErrNotDirectory is reported when a listing is requested for a non-directory path.
var ErrNotDirectory = errors.New("not a directory")

// ListingError reports that the direct children of a directory could not be enumerated.
type ListingError struct {
	Path string
	Err  error
}

func (listingError *ListingError) Error() string {
	return fmt.Sprintf(listingErrorFormat, listingError.Path, listingError.Err)
}

func (listingError *ListingError) Unwrap() error {
	return listingError.Err
}

// MetadataError reports that an already selected entry could not be inspected.
type MetadataError struct {
	Path string
	Err  error
}

func (metadataError *MetadataError) Error() string {
	return fmt.Sprintf(metadataErrorFormat, metadataError.Path, metadataError.Err)
}

func (metadataError *MetadataError) Unwrap() error {
	return metadataError.Err
}

// LinkError reports that a symbolic link target could not be read.
type LinkError struct {
	Path string
	Err  error
}

func (linkError *LinkError) Error() string {
	return fmt.Sprintf(linkErrorFormat, linkError.Path, linkError.Err)
}

func (linkError *LinkError) Unwrap() error {
	return linkError.Err
}

// UnsupportedEntryError reports an entry that is neither a directory, a symbolic link, nor a regular file.
type UnsupportedEntryError struct {
	Path string
	Mode string
}

func (unsupportedError *UnsupportedEntryError) Error() string {
	return fmt.Sprintf(unsupportedEntryFormat, unsupportedError.Mode, unsupportedError.Path)
}
