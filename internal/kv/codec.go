package kv

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// SchemaVersion is written into every envelope.
// Version 0 denotes a bare payload as the browser app stored it.
const SchemaVersion = 1

// ErrUnsupportedVersion flags a record written by a newer build.
var ErrUnsupportedVersion = errors.New("kv: unsupported schema version")

type envelope struct {
	SchemaVersion int             `json:"schemaVersion"`
	Data          json.RawMessage `json:"data"`
}

// Encode wraps v in a versioned envelope.
func Encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{SchemaVersion: SchemaVersion, Data: data})
}

// Decode unwraps raw into v and returns the schema version it was written with.
func Decode(raw []byte, v any) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, errors.New("kv: empty record")
	}
	version, payload, err := unwrap(raw)
	if err != nil {
		return 0, err
	}
	if version > SchemaVersion {
		return version, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	if err := upgrade(version, &payload); err != nil {
		return version, err
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return version, fmt.Errorf("kv: decode payload: %w", err)
	}
	return version, nil
}

func unwrap(raw []byte) (int, json.RawMessage, error) {
	if raw[0] != '{' {
		return 0, raw, nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return 0, nil, fmt.Errorf("kv: decode record: %w", err)
	}
	ver, hasVer := fields["schemaVersion"]
	data, hasData := fields["data"]
	if !hasVer || !hasData {
		return 0, raw, nil
	}
	var version int
	if err := json.Unmarshal(ver, &version); err != nil {
		return 0, nil, fmt.Errorf("kv: decode schema version: %w", err)
	}
	return version, data, nil
}

// upgrade rewrites payload from version to the current layout.
// Version 0 and 1 share the same payload shape.
func upgrade(version int, payload *json.RawMessage) error {
	switch version {
	case 0, SchemaVersion:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
}

// Load reads key from s into v. It reports false when the key is absent.
func Load(ctx context.Context, s Store, key string, v any) (bool, error) {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if _, err := Decode(raw, v); err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	return true, nil
}

// Save writes v under key, replacing any previous value.
func Save(ctx context.Context, s Store, key string, v any) error {
	b, err := Encode(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Put(ctx, key, b); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
