package sheet

import (
	"strings"

	"github.com/jsphweid/tunesheet/model"
	"github.com/jsphweid/tunesheet/util"
)

// Declarations maps declared names to their built nodes. Names compare case
// insensitively.
type Declarations struct {
	nodes map[string]model.Node
	names map[string]string
}

func NewDeclarations() *Declarations {
	return &Declarations{
		nodes: make(map[string]model.Node),
		names: make(map[string]string),
	}
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Declare stores n under name and reports whether an earlier declaration with
// the same name was replaced.
func (d *Declarations) Declare(name string, n model.Node) bool {
	key := normalizeName(name)
	_, replaced := d.nodes[key]
	d.nodes[key] = n
	d.names[key] = strings.TrimSpace(name)
	return replaced
}

func (d *Declarations) Lookup(name string) (model.Node, bool) {
	n, ok := d.nodes[normalizeName(name)]
	return n, ok
}

func (d *Declarations) Len() int {
	return len(d.nodes)
}

// Names returns the declared names as last written, sorted case
// insensitively.
func (d *Declarations) Names() []string {
	res := make([]string, 0, len(d.names))
	for _, key := range util.GetKeys(d.names) {
		res = append(res, d.names[key])
	}
	return res
}
