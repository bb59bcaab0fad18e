package perm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// MarshalPlans converts a plan collection to JSON bytes.
// The encoding is deterministic: plans keep their order and every pair is
// an object with "first" and "second" fields.
func MarshalPlans(plans []Plan) ([]byte, error) {
	var buf bytes.Buffer
	if err := writePlansTo(plans, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalPlans decodes a JSON plan collection from bytes.
// See ReadPlans for the shape checks applied on decode.
func UnmarshalPlans(data []byte) ([]Plan, error) {
	return readPlansFrom(bytes.NewReader(data))
}

// WritePlansFile writes a plan collection to a JSON file.
// The file is created with 0644 permissions.
func WritePlansFile(plans []Plan, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writePlansTo(plans, f)
}

// WritePlans writes a plan collection as JSON to an io.Writer.
// Use MarshalPlans for in-memory serialization or WritePlansFile for files.
func WritePlans(plans []Plan, w io.Writer) error {
	return writePlansTo(plans, w)
}

// ReadPlansFile reads a JSON file and returns the decoded plan collection.
func ReadPlansFile(path string) ([]Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readPlansFrom(f)
}

// ReadPlans decodes a JSON plan collection from an io.Reader.
// Pairs are shape-checked on decode: a pair with First >= Second or a
// negative index is rejected with an error wrapping ErrInvalidPair, so
// corrupt data surfaces here rather than as a misbehaving plan.
func ReadPlans(r io.Reader) ([]Plan, error) {
	return readPlansFrom(r)
}

func writePlansTo(plans []Plan, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(plans); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readPlansFrom(r io.Reader) ([]Plan, error) {
	var plans []Plan
	if err := json.NewDecoder(r).Decode(&plans); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	for i, p := range plans {
		if err := p.checkShape(); err != nil {
			return nil, fmt.Errorf("plan %d: %w", i, err)
		}
	}
	return plans, nil
}
