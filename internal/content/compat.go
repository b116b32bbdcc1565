package content

import (
	"fmt"

	"golang.org/x/mod/semver"
)

// EngineVersion is the content engine version packs are checked against.
// Packs declare the engine version they were authored for; a pack is
// compatible when its major version matches and it is not newer than
// the running engine.
const EngineVersion = "v1.1.0"

// CheckEngine validates a pack's declared engine version.
func CheckEngine(version string) error {
	if !semver.IsValid(version) {
		return fmt.Errorf("invalid engine version %q", version)
	}
	if semver.Major(version) != semver.Major(EngineVersion) {
		return fmt.Errorf("engine version %s incompatible with %s", version, EngineVersion)
	}
	if semver.Compare(version, EngineVersion) > 0 {
		return fmt.Errorf("pack requires engine %s, running %s", version, EngineVersion)
	}
	return nil
}
