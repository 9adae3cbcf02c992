// Package config loads and validates roster files describing a draw: the
// participant list plus forced and blocked pairings.
//
// Two formats are supported, chosen by file extension: JSON (the original
// roster format) and TOML. Both share the same schema:
//
//	{
//	  "names": ["alice", "bob", "carol", "dave"],
//	  "force": {"alice": "bob"},
//	  "block": {"bob": ["alice", "carol"]},
//	  "twoway_force": [["carol", "dave"]],
//	  "twoway_block": [["dave", "alice"]]
//	}
//
// One-way rules apply as written. Two-way rules are symmetrized: a two-way
// force adds a forced edge in both directions (conflicting with any existing
// force), and a two-way block unions a block edge into both sides' sets.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/giftring/pkg/errors"
	"github.com/matzehuels/giftring/pkg/pairing"
)

// Roster is the validated constraint model consumed by the solver.
type Roster struct {
	Names []string
	Fixed pairing.Fixed
	Block pairing.Block
}

// picks accepts either a single name or a list of names, matching the
// original roster format where "block": {"bob": "alice"} is shorthand for
// "block": {"bob": ["alice"]}.
type picks []string

// UnmarshalJSON implements json.Unmarshaler.
func (p *picks) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*p = picks{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*p = picks(list)
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler.
func (p *picks) UnmarshalTOML(v any) error {
	switch val := v.(type) {
	case string:
		*p = picks{val}
		return nil
	case []any:
		list := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("block entry must be a string, got %T", item)
			}
			list = append(list, s)
		}
		*p = picks(list)
		return nil
	}
	return fmt.Errorf("block entry must be a string or list of strings, got %T", v)
}

// rosterFile is the on-disk schema shared by JSON and TOML rosters.
type rosterFile struct {
	Names       []string          `json:"names" toml:"names"`
	Force       map[string]string `json:"force" toml:"force"`
	Block       map[string]picks  `json:"block" toml:"block"`
	TwowayForce [][]string        `json:"twoway_force" toml:"twoway_force"`
	TwowayBlock [][]string        `json:"twoway_block" toml:"twoway_block"`
}

// Load reads and validates a roster file. The format is chosen by extension:
// .toml is decoded as TOML, everything else as JSON.
func Load(path string) (*Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open roster %s", path)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return ParseTOML(f)
	}
	return ParseJSON(f)
}

// ParseJSON decodes and validates a JSON roster.
func ParseJSON(r io.Reader) (*Roster, error) {
	var file rosterFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode roster")
	}
	return build(&file)
}

// ParseTOML decodes and validates a TOML roster.
func ParseTOML(r io.Reader) (*Roster, error) {
	var file rosterFile
	if _, err := toml.NewDecoder(r).Decode(&file); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode roster")
	}
	return build(&file)
}

// build normalizes the on-disk schema into the constraint model, applying
// the two-way merge rules and membership validation.
func build(file *rosterFile) (*Roster, error) {
	member := make(map[string]bool, len(file.Names))
	for _, name := range file.Names {
		if err := errors.ValidateParticipantName(name); err != nil {
			return nil, err
		}
		member[name] = true
	}

	checkName := func(name, section string) error {
		if !member[name] {
			return errors.New(errors.ErrCodeUnknownParticipant, "%q in %q is not a participant", name, section)
		}
		return nil
	}

	fixed := make(pairing.Fixed, len(file.Force))
	for from, to := range file.Force {
		if err := checkName(from, "force"); err != nil {
			return nil, err
		}
		if err := checkName(to, "force"); err != nil {
			return nil, err
		}
		fixed[from] = to
	}

	block := make(pairing.Block, len(file.Block))
	for from, set := range file.Block {
		if err := checkName(from, "block"); err != nil {
			return nil, err
		}
		for _, to := range set {
			if err := checkName(to, "block"); err != nil {
				return nil, err
			}
			block.Add(from, to)
		}
	}

	for _, pair := range file.TwowayForce {
		left, right, err := splitPair(pair, "twoway_force")
		if err != nil {
			return nil, err
		}
		if err := checkName(left, "twoway_force"); err != nil {
			return nil, err
		}
		if err := checkName(right, "twoway_force"); err != nil {
			return nil, err
		}
		// A one-way force on either side would be silently overwritten.
		if _, ok := fixed[left]; ok {
			return nil, errors.New(errors.ErrCodeConflictingForce, "conflicting force requirements with %q and %q", left, right)
		}
		if _, ok := fixed[right]; ok {
			return nil, errors.New(errors.ErrCodeConflictingForce, "conflicting force requirements with %q and %q", left, right)
		}
		fixed[left] = right
		fixed[right] = left
	}

	for _, pair := range file.TwowayBlock {
		left, right, err := splitPair(pair, "twoway_block")
		if err != nil {
			return nil, err
		}
		if err := checkName(left, "twoway_block"); err != nil {
			return nil, err
		}
		if err := checkName(right, "twoway_block"); err != nil {
			return nil, err
		}
		block.Add(left, right)
		block.Add(right, left)
	}

	roster := &Roster{Names: file.Names, Fixed: fixed, Block: block}
	if err := pairing.Validate(roster.Names, roster.Fixed, roster.Block); err != nil {
		return nil, err
	}
	return roster, nil
}

// splitPair validates that a two-way rule has exactly two entries.
func splitPair(pair []string, section string) (string, string, error) {
	if len(pair) != 2 {
		return "", "", errors.New(errors.ErrCodeInvalidConfig, "%q entries must have exactly 2 names, got %d", section, len(pair))
	}
	return pair[0], pair[1], nil
}
