package switcher

import (
	"github.com/MystenLabs/suiup/pkg/errors"
	"github.com/MystenLabs/suiup/pkg/types"
)

// FindInstall picks the single installed artifact a specifier refers
// to. Every part of the specifier that is present narrows the match;
// what is left out is a wildcard. More than one surviving candidate is
// an ambiguity the user has to resolve by qualifying further.
func (s *Switcher) FindInstall(spec types.VersionSpecifier) (types.InstallKey, error) {
	records, err := s.ledger.Installed()
	if err != nil {
		return types.InstallKey{}, err
	}

	var matches []types.InstallRecord
	for _, rec := range records {
		if rec.Tool != spec.Tool || rec.Debug != spec.Debug {
			continue
		}
		if spec.IsNightly() {
			if !rec.IsNightly() {
				continue
			}
		} else {
			if rec.IsNightly() {
				continue
			}
			if spec.Network != nil && rec.Channel != string(*spec.Network) {
				continue
			}
			if spec.Version != "" && rec.Version != spec.Version {
				continue
			}
		}
		matches = append(matches, rec)
	}

	switch len(matches) {
	case 0:
		return types.InstallKey{}, errors.Newf(errors.ErrInstallNotFound,
			"no installed version of %s matches; run \"suiup list\" to see what is installed",
			spec.Tool)
	case 1:
		return matches[0].Key(), nil
	default:
		candidates := make([]string, 0, len(matches))
		for _, m := range matches {
			candidates = append(candidates, m.Key().StoreDirName())
		}
		return types.InstallKey{}, errors.Newf(errors.ErrAmbiguousDefault,
			"%d installed versions of %s match; qualify with a network or version (candidates: %v)",
			len(matches), spec.Tool, candidates).
			WithDetail("candidates", candidates)
	}
}
