package annotate

/*
BSD 3-Clause License

Copyright (c) Norbert Pillmayer

Please refer to the License file in the repository root.
*/

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/linelog"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTML writes the currently checked-out view of log to w as an HTML table,
// one row per line with revision, commit date and line text cells. Rows for
// deleted lines of range views carry class "deleted", rows of the newest
// surviving revision class "head". Line text is escaped by the renderer.
func HTML(log *linelog.LineLog, w io.Writer) error {
	table := element(atom.Table, "linelog")
	view := log.Lines()
	head := 0
	for _, line := range view {
		if !line.Deleted && line.Rev > head {
			head = line.Rev
		}
	}
	for i, line := range view {
		if i == len(view)-1 {
			break // sentinel
		}
		class := ""
		switch {
		case line.Deleted:
			class = "deleted"
		case line.Rev == head:
			class = "head"
		}
		row := element(atom.Tr, class)
		row.AppendChild(cell(fmt.Sprintf("%d", line.Rev)))
		row.AppendChild(cell(date(log.LineTimestamp(i))))
		row.AppendChild(cell(strings.TrimSuffix(line.Data, "\n")))
		table.AppendChild(row)
	}
	return html.Render(w, table)
}

// HTMLRange checks out the union view [start, rev] and renders it. The log is
// left checked out at rev.
func HTMLRange(log *linelog.LineLog, start, rev int, w io.Writer) error {
	if err := log.CheckOutRange(start, rev); err != nil {
		return fmt.Errorf("annotate: %w", err)
	}
	return HTML(log, w)
}

func element(a atom.Atom, class string) *html.Node {
	node := &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
	}
	if class != "" {
		node.Attr = []html.Attribute{{Key: "class", Val: class}}
	}
	return node
}

func cell(text string) *html.Node {
	td := element(atom.Td, "")
	td.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return td
}
