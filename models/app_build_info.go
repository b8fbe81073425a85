// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AppBuildInfo is the build metadata of the vault binary. Values are set
// with -ldflags at build time and printed by `vault version`; any of them
// may be empty for a local build.
type AppBuildInfo struct {
	version string
	date    string
	commit  string
}

func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	return AppBuildInfo{
		version: version,
		date:    date,
		commit:  commit,
	}
}

func (a AppBuildInfo) BuildVersion() string {
	return a.version
}

func (a AppBuildInfo) BuildDate() string {
	return a.date
}

func (a AppBuildInfo) BuildCommit() string {
	return a.commit
}
