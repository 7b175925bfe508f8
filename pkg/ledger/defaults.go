package ledger

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/MystenLabs/suiup/pkg/types"
)

// default_version.json maps a binary name ("sui", "sui-debug") to a
// [channel, version, debug] tuple. The tuple shape is what older suiup
// releases wrote and read, so it is preserved verbatim.

type defaultTuple struct {
	Channel string
	Version string
	Debug   bool
}

func (t defaultTuple) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{t.Channel, t.Version, t.Debug})
}

func (t *defaultTuple) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	if len(parts) != 3 {
		return fmt.Errorf("default entry has %d elements, want 3", len(parts))
	}
	if err := json.Unmarshal(parts[0], &t.Channel); err != nil {
		return err
	}
	if err := json.Unmarshal(parts[1], &t.Version); err != nil {
		return err
	}
	return json.Unmarshal(parts[2], &t.Debug)
}

func encodeDefaults(defaults []types.DefaultPointer) ([]byte, error) {
	m := make(map[string]defaultTuple, len(defaults))
	for _, ptr := range defaults {
		m[ptr.BinaryName()] = defaultTuple{
			Channel: ptr.Channel,
			Version: ptr.Version,
			Debug:   ptr.Debug,
		}
	}
	return json.MarshalIndent(m, "", "  ")
}

func decodeDefaults(data []byte) ([]types.DefaultPointer, error) {
	var m map[string]defaultTuple
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	defaults := make([]types.DefaultPointer, 0, len(m))
	for name, tuple := range m {
		toolName := strings.TrimSuffix(name, "-debug")
		tool, err := types.ParseToolID(toolName)
		if err != nil {
			return nil, fmt.Errorf("unknown binary name %q", name)
		}
		defaults = append(defaults, types.DefaultPointer{
			Tool:    tool,
			Channel: tuple.Channel,
			Version: tuple.Version,
			Debug:   tuple.Debug,
		})
	}
	sort.Slice(defaults, func(i, j int) bool {
		if defaults[i].Tool != defaults[j].Tool {
			return defaults[i].Tool < defaults[j].Tool
		}
		return !defaults[i].Debug && defaults[j].Debug
	})
	return defaults, nil
}
