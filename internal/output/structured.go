package output

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"

	"github.com/temirov/ftree/internal/filetree"
	"github.com/temirov/ftree/internal/types"
	"github.com/temirov/ftree/internal/utils"
)

const (
	indentPrefix = ""
	indentSpacer = "  "

	errorMarshalJSONFormat = "marshal tree to json: %w"
	errorMarshalXMLFormat  = "marshal tree to xml: %w"
)

// ConvertTree maps a built tree onto its structured output form and totals it the same way WriteTree does.
func ConvertTree(tree *filetree.Directory) (*types.TreeOutputNode, types.OutputSummary) {
	var summary types.OutputSummary
	if tree == nil {
		return nil, summary
	}
	return convertNode(tree, &summary), summary
}

func convertNode(node filetree.Node, summary *types.OutputSummary) *types.TreeOutputNode {
	switch typed := node.(type) {
	case *filetree.Directory:
		summary.Directories++
		outputNode := &types.TreeOutputNode{Name: typed.Name, Type: types.NodeTypeDirectory}
		for _, entry := range typed.Entries {
			if child := convertNode(entry, summary); child != nil {
				outputNode.Children = append(outputNode.Children, child)
			}
		}
		return outputNode
	case *filetree.File:
		summary.Files++
		outputNode := &types.TreeOutputNode{Name: typed.Name, Type: types.NodeTypeFile}
		if typed.Metadata != nil {
			outputNode.SizeBytes = typed.Metadata.Size()
			outputNode.Size = utils.FormatFileSize(typed.Metadata.Size())
			outputNode.LastModified = utils.FormatTimestamp(typed.Metadata.ModTime())
		}
		return outputNode
	case *filetree.Symlink:
		summary.Files++
		outputNode := &types.TreeOutputNode{Name: typed.Name, Type: types.NodeTypeSymlink, Target: typed.Target}
		if typed.Metadata != nil {
			outputNode.LastModified = utils.FormatTimestamp(typed.Metadata.ModTime())
		}
		return outputNode
	default:
		return nil
	}
}

func newTreeDocument(rootLabel string, tree *filetree.Directory) (*types.TreeDocument, error) {
	if tree == nil {
		return nil, ErrNilTree
	}
	outputTree, summary := ConvertTree(tree)
	return &types.TreeDocument{Root: rootLabel, Tree: outputTree, Summary: summary}, nil
}

// RenderJSON renders tree as an indented JSON document.
func RenderJSON(rootLabel string, tree *filetree.Directory) (string, error) {
	document, documentError := newTreeDocument(rootLabel, tree)
	if documentError != nil {
		return "", documentError
	}
	var buffer bytes.Buffer
	encoder := json.NewEncoder(&buffer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent(indentPrefix, indentSpacer)
	if encodeError := encoder.Encode(document); encodeError != nil {
		return "", fmt.Errorf(errorMarshalJSONFormat, encodeError)
	}
	return buffer.String(), nil
}

// RenderXML renders tree as an indented XML document with a standard header.
func RenderXML(rootLabel string, tree *filetree.Directory) (string, error) {
	document, documentError := newTreeDocument(rootLabel, tree)
	if documentError != nil {
		return "", documentError
	}
	encoded, marshalError := xml.MarshalIndent(document, indentPrefix, indentSpacer)
	if marshalError != nil {
		return "", fmt.Errorf(errorMarshalXMLFormat, marshalError)
	}
	return xml.Header + string(encoded) + "\n", nil
}
