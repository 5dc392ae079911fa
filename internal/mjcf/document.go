// internal/mjcf/document.go
// Package mjcf wraps an MJCF (MuJoCo XML) model description in a small
// mutation-oriented API. It deliberately models only what the rescaling
// pipeline touches: the body/geom/site kinematic tree, their position and
// size attributes, and mesh asset entries. Everything else in the document
// is carried through untouched on serialization.
package mjcf

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// AngleMode reports how the model's compiler interprets euler attributes.
type AngleMode int

const (
	// Degree is the MJCF compiler default.
	Degree AngleMode = iota
	Radian
)

// Document is a loaded MJCF model.
type Document struct {
	doc *etree.Document
}

// Load reads and parses an MJCF model from path.
func Load(path string) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("failed to read model %s: %w", path, err)
	}
	return wrap(doc)
}

// Parse parses an MJCF model from raw bytes.
func Parse(data []byte) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse model: %w", err)
	}
	return wrap(doc)
}

func wrap(doc *etree.Document) (*Document, error) {
	root := doc.Root()
	if root == nil || root.Tag != "mujoco" {
		return nil, fmt.Errorf("not an MJCF document: missing <mujoco> root")
	}
	return &Document{doc: doc}, nil
}

// Save serializes the (possibly mutated) model to path.
func (d *Document) Save(path string) error {
	if err := d.doc.WriteToFile(path); err != nil {
		return fmt.Errorf("failed to write model %s: %w", path, err)
	}
	return nil
}

// Bytes serializes the model to a byte slice.
func (d *Document) Bytes() ([]byte, error) {
	return d.doc.WriteToBytes()
}

// Model returns the model name declared on the <mujoco> root.
func (d *Document) Model() string {
	return d.doc.Root().SelectAttrValue("model", "")
}

// AngleMode reports the compiler angle convention, defaulting to degrees as
// the MJCF compiler does.
func (d *Document) AngleMode() AngleMode {
	compiler := d.doc.Root().SelectElement("compiler")
	if compiler == nil {
		return Degree
	}
	if compiler.SelectAttrValue("angle", "degree") == "radian" {
		return Radian
	}
	return Degree
}

// Worldbody returns the <worldbody> element, or an error when the model has
// none.
func (d *Document) Worldbody() (*etree.Element, error) {
	wb := d.doc.Root().SelectElement("worldbody")
	if wb == nil {
		return nil, fmt.Errorf("model %q has no <worldbody>", d.Model())
	}
	return wb, nil
}

// kinematicTags are the element kinds carrying positional state in the tree.
var kinematicTags = map[string]bool{
	"body": true,
	"geom": true,
	"site": true,
}

// EachElement walks the kinematic tree depth-first and invokes fn for every
// body, geom and site element. Traversal stops at the first error.
func (d *Document) EachElement(fn func(el *etree.Element) error) error {
	wb, err := d.Worldbody()
	if err != nil {
		return err
	}
	return walk(wb, fn)
}

func walk(el *etree.Element, fn func(el *etree.Element) error) error {
	for _, child := range el.ChildElements() {
		if !kinematicTags[child.Tag] {
			continue
		}
		if err := fn(child); err != nil {
			return err
		}
		if child.Tag == "body" {
			if err := walk(child, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// FindSite returns the site element with the exact given name, or nil.
func (d *Document) FindSite(name string) *etree.Element {
	var found *etree.Element
	_ = d.EachElement(func(el *etree.Element) error {
		if el.Tag == "site" && el.SelectAttrValue("name", "") == name {
			found = el
		}
		return nil
	})
	return found
}

// SubstituteMeshFile replaces the substring from with to in every mesh asset
// file attribute and returns the number of entries rewritten. This is the
// cosmetic rename applied when the rescaled model is written under a new
// name.
func (d *Document) SubstituteMeshFile(from, to string) int {
	if from == "" {
		return 0
	}
	asset := d.doc.Root().SelectElement("asset")
	if asset == nil {
		return 0
	}
	count := 0
	for _, mesh := range asset.SelectElements("mesh") {
		attr := mesh.SelectAttr("file")
		if attr == nil {
			continue
		}
		if replaced := strings.ReplaceAll(attr.Value, from, to); replaced != attr.Value {
			attr.Value = replaced
			count++
		}
	}
	return count
}
