// Package scene provides built-in demo scenes used by the command line.
package scene

import (
	"fmt"
	"sort"

	"github.com/aretw0/easel"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/ports"
)

// Scene builds an engine with its own data type and pipelines.
type Scene struct {
	Name        string
	Description string
	New         func(surface ports.Surface, opts ...easel.Option) (easel.Host, error)
}

var registry = map[string]Scene{}

func register(s Scene) {
	registry[s.Name] = s
}

// Lookup returns the scene called name.
func Lookup(name string) (Scene, error) {
	s, ok := registry[name]
	if !ok {
		return Scene{}, fmt.Errorf("unknown scene %q (available: %v): %w", name, Names(), domain.ErrInvalidOption)
	}
	return s, nil
}

// Names lists the registered scenes in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every registered scene in alphabetical order.
func All() []Scene {
	scenes := make([]Scene, 0, len(registry))
	for _, name := range Names() {
		scenes = append(scenes, registry[name])
	}
	return scenes
}

func background(dark bool) string {
	if dark {
		return "#101418"
	}
	return "#f7f5f0"
}
