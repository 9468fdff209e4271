// ABOUTME: Graphviz rendering of how call notes spread across folders and contacts
// ABOUTME: Folders are boxes, contacts ellipses, and edges carry the note count between them
package viz

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/harperreed/callbook/models"
)

// Format is a graph output format.
type Format string

const (
	FormatDOT Format = "dot"
	FormatSVG Format = "svg"
)

const ungroupedNode = "ungrouped"

func (f Format) graphviz() (graphviz.Format, error) {
	switch f {
	case "", FormatDOT:
		return graphviz.XDOT, nil
	case FormatSVG:
		return graphviz.SVG, nil
	}
	return "", fmt.Errorf("unknown graph format %q", f)
}

type edgeKey struct {
	folder  string
	contact string
}

// FolderGraph renders notes as a folder to contact graph. Notes whose folder
// no longer exists are drawn under an "Ungrouped" node.
func FolderGraph(ctx context.Context, notes []models.CallNote, folders []models.NoteFolder, format Format) (string, error) {
	out, err := format.graphviz()
	if err != nil {
		return "", err
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create graphviz instance: %w", err)
	}
	defer func() { _ = gv.Close() }()

	graph, err := gv.Graph()
	if err != nil {
		return "", fmt.Errorf("failed to create graph: %w", err)
	}
	defer func() { _ = graph.Close() }()

	graph.SetLabel("Call notes by folder")
	graph.SetRankDir(cgraph.LRRank)

	known := make(map[string]models.NoteFolder, len(folders))
	for _, f := range folders {
		known[f.ID] = f
	}

	counts := make(map[edgeKey]int)
	contactNames := make(map[string]string)
	for _, n := range notes {
		folder := ungroupedNode
		if _, ok := known[n.FolderID]; ok {
			folder = "folder_" + n.FolderID
		}
		counts[edgeKey{folder, n.ContactID}]++
		contactNames[n.ContactID] = n.ContactName
	}

	folderNodes := make(map[string]*cgraph.Node)
	for _, f := range folders {
		node, err := graph.CreateNodeByName("folder_" + f.ID)
		if err != nil {
			return "", fmt.Errorf("failed to create folder node: %w", err)
		}
		node.SetLabel(f.Name)
		node.SetShape("box")
		node.SetStyle("filled")
		if f.Color != "" {
			node.SetFillColor(f.Color)
		} else {
			node.SetFillColor("lightblue")
		}
		folderNodes["folder_"+f.ID] = node
	}

	keys := make([]edgeKey, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].folder != keys[j].folder {
			return keys[i].folder < keys[j].folder
		}
		return keys[i].contact < keys[j].contact
	})

	contactNodes := make(map[string]*cgraph.Node)
	for _, k := range keys {
		from, ok := folderNodes[k.folder]
		if !ok {
			node, err := graph.CreateNodeByName(ungroupedNode)
			if err != nil {
				return "", fmt.Errorf("failed to create folder node: %w", err)
			}
			node.SetLabel("Ungrouped")
			node.SetShape("box")
			node.SetStyle("dashed")
			folderNodes[k.folder] = node
			from = node
		}

		to, ok := contactNodes[k.contact]
		if !ok {
			node, err := graph.CreateNodeByName("contact_" + k.contact)
			if err != nil {
				return "", fmt.Errorf("failed to create contact node: %w", err)
			}
			name := contactNames[k.contact]
			if name == "" {
				name = "Unknown"
			}
			node.SetLabel(name)
			node.SetShape("ellipse")
			node.SetStyle("filled")
			node.SetFillColor("lightgreen")
			contactNodes[k.contact] = node
			to = node
		}

		edge, err := graph.CreateEdgeByName(k.folder+"_"+k.contact, from, to)
		if err != nil {
			return "", fmt.Errorf("failed to create edge: %w", err)
		}
		edge.SetLabel(fmt.Sprintf("%d", counts[k]))
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, out, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}
	return buf.String(), nil
}
