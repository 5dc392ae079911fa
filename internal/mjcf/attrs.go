// internal/mjcf/attrs.go
package mjcf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/kinemorph/skelscale-cli/internal/spatial"
)

// ParseVec parses a whitespace-separated float attribute like pos="0 0 0.06".
// The second return value is false when the attribute is absent.
func ParseVec(el *etree.Element, key string) ([]float64, bool, error) {
	attr := el.SelectAttr(key)
	if attr == nil {
		return nil, false, nil
	}
	fields := strings.Fields(attr.Value)
	vals := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, true, fmt.Errorf("element %s: bad %s attribute %q: %w", el.GetPath(), key, attr.Value, err)
		}
		vals = append(vals, v)
	}
	return vals, true, nil
}

// SetVec writes a float slice back as a whitespace-separated attribute.
func SetVec(el *etree.Element, key string, vals []float64) {
	fields := make([]string, len(vals))
	for i, v := range vals {
		fields[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	el.CreateAttr(key, strings.Join(fields, " "))
}

// Pos3 reads a 3-vector attribute, defaulting to the zero vector when the
// attribute is absent (the MJCF default for pos).
func Pos3(el *etree.Element, key string) (spatial.Vec3, error) {
	vals, ok, err := ParseVec(el, key)
	if err != nil {
		return spatial.Vec3{}, err
	}
	if !ok {
		return spatial.Vec3{}, nil
	}
	if len(vals) != 3 {
		return spatial.Vec3{}, fmt.Errorf("element %s: %s has %d components, want 3", el.GetPath(), key, len(vals))
	}
	return spatial.Vec3{X: vals[0], Y: vals[1], Z: vals[2]}, nil
}

// Orientation reads a body or site orientation from its quat or euler
// attribute, honoring the compiler angle mode. Elements without either
// attribute are unrotated.
func Orientation(el *etree.Element, mode AngleMode) (spatial.Quat, error) {
	if vals, ok, err := ParseVec(el, "quat"); ok || err != nil {
		if err != nil {
			return spatial.IdentityQuat(), err
		}
		if len(vals) != 4 {
			return spatial.IdentityQuat(), fmt.Errorf("element %s: quat has %d components, want 4", el.GetPath(), len(vals))
		}
		return spatial.Quat{W: vals[0], X: vals[1], Y: vals[2], Z: vals[3]}.Normalize(), nil
	}
	if vals, ok, err := ParseVec(el, "euler"); ok || err != nil {
		if err != nil {
			return spatial.IdentityQuat(), err
		}
		if len(vals) != 3 {
			return spatial.IdentityQuat(), fmt.Errorf("element %s: euler has %d components, want 3", el.GetPath(), len(vals))
		}
		if mode == Degree {
			for i := range vals {
				vals[i] *= degToRad
			}
		}
		return spatial.EulerXYZ(vals[0], vals[1], vals[2]), nil
	}
	return spatial.IdentityQuat(), nil
}

const degToRad = 0.017453292519943295

// scaleAttr multiplies every component of a numeric attribute in place.
// It reports whether the attribute was present.
func scaleAttr(el *etree.Element, key string, factor float64) (bool, error) {
	vals, ok, err := ParseVec(el, key)
	if err != nil {
		return ok, err
	}
	if !ok {
		return false, nil
	}
	for i := range vals {
		vals[i] *= factor
	}
	SetVec(el, key, vals)
	return true, nil
}
