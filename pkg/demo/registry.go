package demo

import (
	"fmt"
	"slices"
)

var registry = slices.Concat(constructorDemos(), operatorDemos(), collectorDemos())

// All returns every demonstration in declaration order.
func All() []Demo {
	return slices.Clone(registry)
}

// Groups returns the group names in declaration order.
func Groups() []string {
	return []string{GroupConstructor, GroupOperator, GroupCollector}
}

// Lookup finds a demonstration by name.
func Lookup(name string) (Demo, error) {
	for _, d := range registry {
		if d.Name == name {
			return d, nil
		}
	}
	return Demo{}, fmt.Errorf("%w: %q", ErrUnknownDemo, name)
}

// ByGroup returns the demonstrations of group in declaration order.
func ByGroup(group string) ([]Demo, error) {
	if !slices.Contains(Groups(), group) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, group)
	}

	var demos []Demo
	for _, d := range registry {
		if d.Group == group {
			demos = append(demos, d)
		}
	}
	return demos, nil
}

// Select narrows the registry to group, when set, and then to names, when
// given. Names keep registry order regardless of the order they are listed in.
func Select(group string, names []string) ([]Demo, error) {
	demos := All()
	if group != "" {
		var err error
		if demos, err = ByGroup(group); err != nil {
			return nil, err
		}
	}
	if len(names) == 0 {
		return demos, nil
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		d, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		if group != "" && d.Group != group {
			return nil, fmt.Errorf("%w: %q is not in group %q", ErrUnknownDemo, name, group)
		}
		wanted[name] = true
	}

	return slices.DeleteFunc(demos, func(d Demo) bool { return !wanted[d.Name] }), nil
}
