package utils

import (
	"runtime/debug"
)

const (
	unknownVersion          = "unknown"
	develVersion            = "(devel)"
	revisionSettingKey      = "vcs.revision"
	modifiedSettingKey      = "vcs.modified"
	dirtyVersionSuffix      = "-dirty"
	shortRevisionCharacters = 12
)

// GetApplicationVersion reports the module version, or the VCS revision stamped into development builds.
func GetApplicationVersion() string {
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if !buildInfoAvailable {
		return unknownVersion
	}
	return versionFromBuildInfo(buildInfo)
}

func versionFromBuildInfo(buildInfo *debug.BuildInfo) string {
	if buildInfo.Main.Version != "" && buildInfo.Main.Version != develVersion {
		return buildInfo.Main.Version
	}

	var revision string
	var modified bool
	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case revisionSettingKey:
			revision = setting.Value
		case modifiedSettingKey:
			modified = setting.Value == "true"
		}
	}
	if revision == "" {
		return unknownVersion
	}
	if len(revision) > shortRevisionCharacters {
		revision = revision[:shortRevisionCharacters]
	}
	if modified {
		revision += dirtyVersionSuffix
	}
	return revision
}
