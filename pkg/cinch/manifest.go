// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cinch

import (
	"gopkg.in/yaml.v3"

	"github.com/cinchrun/cinch/pkg/program"
)

// Manifest is a machine-readable description of a program's argument
// interface. The Runner serves it for the built-in describe switch, so
// scripts and tooling can inspect a program without scraping its help
// text.
type Manifest struct {
	Program     string         `yaml:"program,omitempty"`
	Version     string         `yaml:"version,omitempty"`
	Description string         `yaml:"description,omitempty"`
	Slots       []ManifestSlot `yaml:"slots"`
}

// ManifestSlot describes one slot. Kind is "positional", "switch", or
// "flag"; Position is set for positional slots only.
type ManifestSlot struct {
	Name        string `yaml:"name"`
	Kind        string `yaml:"kind"`
	Position    *int   `yaml:"position,omitempty"`
	Type        string `yaml:"type"`
	Item        string `yaml:"item"`
	Required    bool   `yaml:"required"`
	List        bool   `yaml:"list,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// NewManifest builds the manifest for a discovered slot list. info may
// be nil.
func NewManifest(info *program.Info, slots []*Slot) Manifest {
	var m Manifest
	if info != nil {
		m.Program = info.Name
		m.Version = info.Version
		m.Description = info.Description
	}
	for _, s := range slots {
		ms := ManifestSlot{
			Name:        s.Name,
			Type:        s.Type.String(),
			Item:        s.ItemName,
			Required:    s.Required,
			List:        s.List,
			Description: s.Description,
		}
		switch {
		case s.Ordinal != NotOrdinal:
			ms.Kind = "positional"
			p := s.Ordinal
			ms.Position = &p
		case s.Flag:
			ms.Kind = "flag"
		default:
			ms.Kind = "switch"
		}
		m.Slots = append(m.Slots, ms)
	}
	return m
}

// YAML renders the manifest.
func (m Manifest) YAML() ([]byte, error) {
	return yaml.Marshal(m)
}
