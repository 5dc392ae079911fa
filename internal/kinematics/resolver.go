// internal/kinematics/resolver.go
// Package kinematics computes world-frame positions of named sites in an
// MJCF model at its rest pose (all joints at zero). That is all the
// rescaling procedure needs: landmark distances are a pure function of the
// nested body offsets and orientations in the XML.
package kinematics

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/kinemorph/skelscale-cli/internal/mjcf"
	"github.com/kinemorph/skelscale-cli/internal/spatial"
)

// Resolver resolves site positions against a live document. It holds no
// cache, so mutations to the document are reflected immediately.
type Resolver struct {
	doc  *mjcf.Document
	mode mjcf.AngleMode
}

// NewResolver builds a resolver for doc.
func NewResolver(doc *mjcf.Document) *Resolver {
	return &Resolver{doc: doc, mode: doc.AngleMode()}
}

// SitePosition returns the world position of the named site.
func (r *Resolver) SitePosition(name string) (spatial.Vec3, error) {
	wb, err := r.doc.Worldbody()
	if err != nil {
		return spatial.Vec3{}, err
	}
	pos, found, err := r.search(wb, spatial.Vec3{}, spatial.IdentityQuat(), name)
	if err != nil {
		return spatial.Vec3{}, err
	}
	if !found {
		return spatial.Vec3{}, fmt.Errorf("site %q not found in model", name)
	}
	return pos, nil
}

// SiteDistance returns the Euclidean distance between two named sites.
func (r *Resolver) SiteDistance(a, b string) (float64, error) {
	pa, err := r.SitePosition(a)
	if err != nil {
		return 0, err
	}
	pb, err := r.SitePosition(b)
	if err != nil {
		return 0, err
	}
	return pa.Dist(pb), nil
}

// search walks the body tree carrying the parent frame (origin, rotation).
func (r *Resolver) search(parent *etree.Element, origin spatial.Vec3, rot spatial.Quat, name string) (spatial.Vec3, bool, error) {
	for _, child := range parent.ChildElements() {
		switch child.Tag {
		case "site":
			if child.SelectAttrValue("name", "") != name {
				continue
			}
			local, err := mjcf.Pos3(child, "pos")
			if err != nil {
				return spatial.Vec3{}, false, err
			}
			return origin.Add(rot.Rotate(local)), true, nil
		case "body":
			offset, err := mjcf.Pos3(child, "pos")
			if err != nil {
				return spatial.Vec3{}, false, err
			}
			orient, err := mjcf.Orientation(child, r.mode)
			if err != nil {
				return spatial.Vec3{}, false, err
			}
			childOrigin := origin.Add(rot.Rotate(offset))
			childRot := rot.Mul(orient)
			pos, found, err := r.search(child, childOrigin, childRot, name)
			if err != nil || found {
				return pos, found, err
			}
		}
	}
	return spatial.Vec3{}, false, nil
}
