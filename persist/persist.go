// Package persist snapshots and restores a Machine's current state to
// YAML, in the style of comalice-statechartx's YAMLPersister: one file
// per machine, named by machine id, written with gopkg.in/yaml.v3.
//
// The engine keeps no registry of leaf types -- the hierarchy graph is
// an implicit pure function, not a table -- so there is no generic way
// to marshal an arbitrary Handler value. The caller supplies a Codec
// that knows the finite set of leaf types their own machine actually
// uses.
package persist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mbrostami/hsm"
)

// Codec converts between a live leaf state and its durable form: a
// variant tag identifying which leaf type it is, plus whatever local
// data that leaf carries.
type Codec[C any] interface {
	// Tag names state's variant, for Unmarshal to dispatch on.
	Tag(state hsm.State[C]) string
	// Marshal returns state's local data in a form yaml.Marshal can
	// encode (a struct, a map, or anything yaml.v3 understands).
	Marshal(state hsm.State[C]) (any, error)
	// Unmarshal reconstructs the leaf state named by tag from the data
	// Marshal previously produced for it.
	Unmarshal(tag string, data *yaml.Node) (hsm.State[C], error)
}

// Snapshot is the on-disk representation written by Save and read by
// Load.
type Snapshot struct {
	MachineID string    `yaml:"machine_id"`
	Tag       string    `yaml:"tag"`
	Data      yaml.Node `yaml:"data"`
}

// Save captures m's current state through codec and writes it to
// <dir>/<machineID>.yaml.
func Save[C any](m *hsm.Machine[C], codec Codec[C], dir, machineID string) error {
	payload, err := codec.Marshal(m.Current())
	if err != nil {
		return fmt.Errorf("persist: marshal state: %w", err)
	}
	var node yaml.Node
	if err := node.Encode(payload); err != nil {
		return fmt.Errorf("persist: encode state: %w", err)
	}

	snap := Snapshot{MachineID: machineID, Tag: codec.Tag(m.Current()), Data: node}
	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("persist: marshal snapshot: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("persist: mkdir %s: %w", dir, err)
	}
	fn := filepath.Join(dir, machineID+".yaml")
	if err := os.WriteFile(fn, data, 0o644); err != nil {
		return fmt.Errorf("persist: write %s: %w", fn, err)
	}
	return nil
}

// Load reads the snapshot Save wrote and reconstructs the leaf state
// through codec. It does not touch any live Machine: the caller
// re-initializes a Machine with the returned state as its declared
// initial state, since the engine has no "jump to state" operation
// outside of Init.
func Load[C any](codec Codec[C], dir, machineID string) (hsm.State[C], error) {
	fn := filepath.Join(dir, machineID+".yaml")
	data, err := os.ReadFile(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("persist: machine %q: %w", machineID, os.ErrNotExist)
		}
		return nil, fmt.Errorf("persist: read %s: %w", fn, err)
	}

	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("persist: unmarshal snapshot: %w", err)
	}

	state, err := codec.Unmarshal(snap.Tag, &snap.Data)
	if err != nil {
		return nil, fmt.Errorf("persist: reconstruct state %q: %w", snap.Tag, err)
	}
	return state, nil
}
