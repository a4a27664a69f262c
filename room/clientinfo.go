/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

package room

import (
	"os"
	"runtime"

	"github.com/nexusrtc/client-go/signaling"
)

// SDK identity baked into every connection URL.
const (
	SDKTag = "go"

	// Version is this library's release version.
	Version = "0.1.0"

	// ProtocolVersion is the signaling wire protocol revision this client
	// negotiates.
	ProtocolVersion = 15
)

// SystemInfo is the system-info collector collaborator: four short ASCII
// tags describing the host, each of which lands in a connection URL
// parameter.
type SystemInfo interface {
	OSName() string
	OSVersion() string
	DeviceModel() string
	NetworkType() string
}

// hostSystemInfo reports what the Go runtime can see of the host without
// platform-specific probing.
type hostSystemInfo struct{}

func (hostSystemInfo) OSName() string    { return runtime.GOOS }
func (hostSystemInfo) OSVersion() string { return "unknown" }

func (hostSystemInfo) DeviceModel() string {
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return runtime.GOARCH
}

func (hostSystemInfo) NetworkType() string { return "wired" }

// HostSystemInfo returns the default collector backed by the Go runtime.
func HostSystemInfo() SystemInfo { return hostSystemInfo{} }

// NewClientInfo assembles the per-connect immutable ClientInfo from a
// system-info collector.
func NewClientInfo(si SystemInfo) signaling.ClientInfo {
	if si == nil {
		si = HostSystemInfo()
	}
	return signaling.ClientInfo{
		SDK:         SDKTag,
		Version:     Version,
		Protocol:    ProtocolVersion,
		OS:          si.OSName(),
		OSVersion:   si.OSVersion(),
		DeviceModel: si.DeviceModel(),
		NetworkType: si.NetworkType(),
	}
}
