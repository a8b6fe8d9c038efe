package profilerepo

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yanqian/trip-advisor/internal/domain/profile"
)

type profileFile struct {
	Profiles []profile.UserProfile `yaml:"profiles"`
}

// LoadYAML reads a seed file of the form `profiles: [...]` and validates
// every entry.
func LoadYAML(path string) ([]profile.UserProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles: %w", err)
	}
	var file profileFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}
	seen := make(map[string]bool, len(file.Profiles))
	for i := range file.Profiles {
		p := &file.Profiles[i]
		p.ID = profile.NormalizeID(p.ID)
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("profile %d (%q): %w", i, p.ID, err)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("duplicate profile id %q", p.ID)
		}
		seen[p.ID] = true
	}
	return file.Profiles, nil
}
