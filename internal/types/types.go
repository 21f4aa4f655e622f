// Package types defines the data structures shared between the renderer and the CLI.
package types

import "encoding/xml"

const (
	NodeTypeFile      = "file"
	NodeTypeDirectory = "directory"
	NodeTypeSymlink   = "symlink"

	FormatRaw  = "raw"
	FormatJSON = "json"
	FormatXML  = "xml"
)

// IsSupportedFormat reports whether the provided format is recognized.
func IsSupportedFormat(format string) bool {
	switch format {
	case FormatRaw, FormatJSON, FormatXML:
		return true
	default:
		return false
	}
}

// TreeOutputNode is the structured form of one tree node.
type TreeOutputNode struct {
	XMLName      xml.Name          `json:"-" xml:"node"`
	Name         string            `json:"name" xml:"name"`
	Type         string            `json:"type" xml:"type"`
	Target       string            `json:"target,omitempty" xml:"target,omitempty"`
	Size         string            `json:"size,omitempty" xml:"size,omitempty"`
	SizeBytes    int64             `json:"sizeBytes,omitempty" xml:"sizeBytes,omitempty"`
	LastModified string            `json:"lastModified,omitempty" xml:"lastModified,omitempty"`
	Children     []*TreeOutputNode `json:"children,omitempty" xml:"children>node,omitempty"`
}

// OutputSummary captures the directory and file totals of a rendered tree.
type OutputSummary struct {
	Directories int `json:"directories" xml:"directories"`
	Files       int `json:"files" xml:"files"`
}

// TreeDocument is the top-level structured rendering.
type TreeDocument struct {
	XMLName xml.Name        `json:"-" xml:"result"`
	Root    string          `json:"root" xml:"root"`
	Tree    *TreeOutputNode `json:"tree" xml:"tree>node"`
	Summary OutputSummary   `json:"summary" xml:"summary"`
}
