// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

const notAvailable = "N/A"

// AppBuildInfo carries immutable build-time metadata embedded into binaries.
//
// Values are injected by linker flags during CI/CD and exposed by the
// control API and the startup banner.
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
}

// NewAppBuildInfo constructs [AppBuildInfo]; empty values are replaced
// with "N/A".
func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		buildVersion: orNotAvailable(buildVersion),
		buildDate:    orNotAvailable(buildDate),
		buildCommit:  orNotAvailable(buildCommit),
	}
}

// BuildVersion returns the semantic version string of the build.
func (a AppBuildInfo) BuildVersion() string {
	return a.buildVersion
}

// BuildDate returns the build timestamp string.
func (a AppBuildInfo) BuildDate() string {
	return a.buildDate
}

// BuildCommit returns the source-control commit hash used for the build.
func (a AppBuildInfo) BuildCommit() string {
	return a.buildCommit
}

func orNotAvailable(v string) string {
	if v == "" {
		return notAvailable
	}
	return v
}

// PluginInfo describes the adapter to the sync engine.
type PluginInfo struct {
	Name        string   `json:"name"`
	LongName    string   `json:"long_name"`
	Description string   `json:"description"`
	Model       string   `json:"model"`
	ObjectTypes []string `json:"object_types"`
	Formats     []string `json:"formats"`
	Version     string   `json:"version"`
	BuildDate   string   `json:"build_date"`
	BuildCommit string   `json:"build_commit"`
}

// NewPluginInfo returns the adapter description for the given build.
func NewPluginInfo(build AppBuildInfo) PluginInfo {
	return PluginInfo{
		Name:        "iphone-sync",
		LongName:    "iPhone contacts",
		Description: "Synchronize contacts from an iPhone over MobileSync",
		Model:       "3G",
		ObjectTypes: []string{ContactObjectType},
		Formats:     []string{ContactFormat},
		Version:     build.BuildVersion(),
		BuildDate:   build.BuildDate(),
		BuildCommit: build.BuildCommit(),
	}
}
