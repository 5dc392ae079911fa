// internal/mjcf/scale.go
package mjcf

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// NameMatches reports whether name contains at least one of the part
// substrings and none of the exclusions. Unnamed elements never match.
func NameMatches(name string, parts, exclude []string) bool {
	if name == "" {
		return false
	}
	for _, ex := range exclude {
		if ex != "" && strings.Contains(name, ex) {
			return false
		}
	}
	for _, p := range parts {
		if p != "" && strings.Contains(name, p) {
			return true
		}
	}
	return false
}

// ScalePositions multiplies the position fields of every body, geom and site
// in the kinematic tree by factor, skipping elements whose name contains any
// of the skip substrings. It returns the number of elements touched.
//
// Only positional attributes are scaled here; sizes are left alone so the
// global pass changes the skeleton's proportions, not its girth.
func (d *Document) ScalePositions(factor float64, skip []string) (int, error) {
	if factor <= 0 {
		return 0, fmt.Errorf("scale factor must be positive, got %g", factor)
	}
	count := 0
	err := d.EachElement(func(el *etree.Element) error {
		name := el.SelectAttrValue("name", "")
		for _, s := range skip {
			if s != "" && strings.Contains(name, s) {
				return nil
			}
		}
		touched, err := scalePositional(el, factor)
		if err != nil {
			return err
		}
		if touched {
			count++
		}
		return nil
	})
	return count, err
}

// ScaleMatching multiplies the positions, and for geoms also the sizes, of
// every named element matching parts (less exclusions) by factor. It returns
// the number of elements touched.
func (d *Document) ScaleMatching(factor float64, parts, exclude []string) (int, error) {
	if factor <= 0 {
		return 0, fmt.Errorf("scale factor must be positive, got %g", factor)
	}
	count := 0
	err := d.EachElement(func(el *etree.Element) error {
		if !NameMatches(el.SelectAttrValue("name", ""), parts, exclude) {
			return nil
		}
		touched, err := scalePositional(el, factor)
		if err != nil {
			return err
		}
		if el.Tag == "geom" || el.Tag == "site" {
			sized, err := scaleAttr(el, "size", factor)
			if err != nil {
				return err
			}
			touched = touched || sized
		}
		if touched {
			count++
		}
		return nil
	})
	return count, err
}

// scalePositional scales the attributes that place an element in its parent
// frame: pos for everything, fromto for capsule-style geoms.
func scalePositional(el *etree.Element, factor float64) (bool, error) {
	touched, err := scaleAttr(el, "pos", factor)
	if err != nil {
		return touched, err
	}
	if el.Tag == "geom" {
		ft, err := scaleAttr(el, "fromto", factor)
		if err != nil {
			return touched, err
		}
		touched = touched || ft
	}
	return touched, nil
}
