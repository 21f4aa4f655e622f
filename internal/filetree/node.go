// Package filetree builds an immutable in-memory tree of directories, files and symbolic links.
package filetree

import "io/fs"

// Node is one element of a built tree: *Directory, *File or *Symlink.
type Node interface {
	NodeName() string
	node()
}

// Directory holds its non-hidden children in ascending name order.
type Directory struct {
	Name    string
	Entries []Node
}

// File is a regular file. Metadata is carried but never interpreted by the tree.
type File struct {
	Name     string
	Metadata fs.FileInfo
}

// Symlink is a symbolic link leaf. Target is the raw, unresolved link text.
type Symlink struct {
	Name     string
	Metadata fs.FileInfo
	Target   string
}

func (directory *Directory) NodeName() string { return directory.Name }

func (file *File) NodeName() string { return file.Name }

func (symlink *Symlink) NodeName() string { return symlink.Name }

func (*Directory) node() {}
func (*File) node()      {}
func (*Symlink) node()   {}
