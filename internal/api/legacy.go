package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/soaringjerry/Sondage/internal/kv"
	"github.com/soaringjerry/Sondage/internal/services"
)

// LegacySnapshot is the state a browser build kept in localStorage.
type LegacySnapshot struct {
	User      *services.Identity
	Sections  []services.Section
	Responses []services.UserResponse
}

// ErrAlreadyInitialized is returned by ImportLegacy when the target already
// holds a survey definition and force is off.
var ErrAlreadyInitialized = errors.New("target store already holds a survey definition")

// LoadLegacyDump reads a JSON object of localStorage keys. Values may be the
// raw strings localStorage held or already decoded JSON.
func LoadLegacyDump(path string) (*LegacySnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseLegacyDump(data)
}

func ParseLegacyDump(data []byte) (*LegacySnapshot, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode dump: %w", err)
	}
	snap := &LegacySnapshot{}
	if v, ok := raw["surveyUser"]; ok {
		var id services.Identity
		found, err := decodeLegacyValue(v, &id)
		if err != nil {
			return nil, fmt.Errorf("surveyUser: %w", err)
		}
		if found && id.ID != "" {
			snap.User = &id
		}
	}
	if v, ok := raw["surveySections"]; ok {
		if _, err := decodeLegacyValue(v, &snap.Sections); err != nil {
			return nil, fmt.Errorf("surveySections: %w", err)
		}
	}
	if v, ok := raw["surveyResponses"]; ok {
		if _, err := decodeLegacyValue(v, &snap.Responses); err != nil {
			return nil, fmt.Errorf("surveyResponses: %w", err)
		}
	}
	return snap, nil
}

// decodeLegacyValue unwraps a JSON string holding JSON, as localStorage stores it.
func decodeLegacyValue(v json.RawMessage, out any) (bool, error) {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		if s == "" {
			return false, nil
		}
		v = json.RawMessage(s)
	}
	if string(v) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(v, out); err != nil {
		return false, err
	}
	return true, nil
}

// ImportLegacy writes snap into dst under the current record keys. Parts absent
// from the snapshot are left untouched.
func ImportLegacy(ctx context.Context, dst kv.Store, snap *LegacySnapshot, force bool) error {
	if snap == nil {
		return nil
	}
	if !force {
		_, err := dst.Get(ctx, kv.KeyDefinition)
		if err == nil {
			return ErrAlreadyInitialized
		}
		if !errors.Is(err, kv.ErrNotFound) {
			return fmt.Errorf("check definition: %w", err)
		}
	}
	if snap.Sections != nil {
		if err := kv.Save(ctx, dst, kv.KeyDefinition, snap.Sections); err != nil {
			return fmt.Errorf("write definition: %w", err)
		}
	}
	if snap.Responses != nil {
		if err := kv.Save(ctx, dst, kv.KeyResponses, snap.Responses); err != nil {
			return fmt.Errorf("write responses: %w", err)
		}
	}
	if snap.User != nil {
		if err := kv.Save(ctx, dst, kv.KeyIdentity, snap.User); err != nil {
			return fmt.Errorf("write identity: %w", err)
		}
	}
	return nil
}
