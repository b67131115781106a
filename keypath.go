package lottie

import "strings"

// Properties returns the animated properties matching keypath.
//
// A keypath is a dot-separated list of layer names followed by a property
// name, e.g. "Intro.Logo.Time Remap". A "*" component matches any single
// layer name.
func (a *Animation) Properties(keypath string) []*AnimatedProperty {
	parts := strings.Split(keypath, ".")
	if len(parts) < 2 {
		return nil
	}
	return findProperties(a.root.ChildKeypaths(), parts[:len(parts)-1], parts[len(parts)-1], nil)
}

func findProperties(layers []Layer, path []string, name string, out []*AnimatedProperty) []*AnimatedProperty {
	for _, l := range layers {
		if path[0] != "*" && path[0] != l.KeypathName() {
			continue
		}
		if len(path) == 1 {
			if p, ok := l.KeypathProperties()[name]; ok {
				out = append(out, p)
			}
			continue
		}
		out = findProperties(l.ChildKeypaths(), path[1:], name, out)
	}
	return out
}

// SetValueProvider overrides every property matching keypath and returns
// how many were matched. The current frame is republished.
func (a *Animation) SetValueProvider(keypath string, vp ValueProvider) int {
	props := a.Properties(keypath)
	for _, p := range props {
		p.SetValueProvider(vp)
	}
	if len(props) > 0 && a.hasFrame {
		a.ForceUpdate()
	}
	return len(props)
}
