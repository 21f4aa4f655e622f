// Package output renders built trees as box-drawing text, JSON or XML.
package output

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/temirov/ftree/internal/filetree"
	"github.com/temirov/ftree/internal/types"
)

const (
	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	symlinkArrow      = " -> "
	summaryLineFormat = "%d directories, %d files"

	invalidFormatMessage = "invalid format value '%s'"
)

// ErrNilTree is returned when a nil tree is handed to a writer.
var ErrNilTree = errors.New("output: tree is nil")

// Counts are the directory and file totals of a rendering. The root directory is included.
type Counts struct {
	Directories int
	Files       int
}

// RenderTree renders tree below rootLabel followed by a blank line and the summary line.
func RenderTree(rootLabel string, tree *filetree.Directory) (string, int, int) {
	var builder strings.Builder
	counts, _ := WriteTree(&builder, rootLabel, tree)
	return builder.String(), counts.Directories, counts.Files
}

// WriteTree streams the raw rendering of tree to writer. It never touches the filesystem.
func WriteTree(writer io.Writer, rootLabel string, tree *filetree.Directory) (Counts, error) {
	if tree == nil {
		return Counts{}, ErrNilTree
	}
	treeWriter := &rawTreeWriter{writer: writer}
	treeWriter.line(rootLabel)
	treeWriter.counts.Directories++
	treeWriter.entries(tree.Entries, "")
	treeWriter.line("")
	treeWriter.line(FormatSummaryLine(treeWriter.counts))
	return treeWriter.counts, treeWriter.err
}

// FormatSummaryLine formats the trailing totals line.
func FormatSummaryLine(counts Counts) string {
	return fmt.Sprintf(summaryLineFormat, counts.Directories, counts.Files)
}

// Render produces the rendering of tree in the requested format.
func Render(format string, rootLabel string, tree *filetree.Directory) (string, error) {
	switch format {
	case types.FormatRaw:
		if tree == nil {
			return "", ErrNilTree
		}
		text, _, _ := RenderTree(rootLabel, tree)
		return text, nil
	case types.FormatJSON:
		return RenderJSON(rootLabel, tree)
	case types.FormatXML:
		return RenderXML(rootLabel, tree)
	default:
		return "", fmt.Errorf(invalidFormatMessage, format)
	}
}

type rawTreeWriter struct {
	writer io.Writer
	counts Counts
	err    error
}

func (treeWriter *rawTreeWriter) line(text string) {
	if treeWriter.err != nil {
		return
	}
	_, treeWriter.err = fmt.Fprintln(treeWriter.writer, text)
}

func (treeWriter *rawTreeWriter) entries(entries []filetree.Node, prefix string) {
	for index, entry := range entries {
		connector, continuation := treeBranchConnector, treeBranchPadding
		if index == len(entries)-1 {
			connector, continuation = treeLastConnector, treeLastPadding
		}
		switch node := entry.(type) {
		case *filetree.Directory:
			treeWriter.counts.Directories++
			treeWriter.line(prefix + connector + node.Name)
			treeWriter.entries(node.Entries, prefix+continuation)
		case *filetree.Symlink:
			treeWriter.counts.Files++
			treeWriter.line(prefix + connector + node.Name + symlinkArrow + node.Target)
		case *filetree.File:
			treeWriter.counts.Files++
			treeWriter.line(prefix + connector + node.Name)
		}
	}
}
