/* SPDX-License-Identifier: MPL-2.0
 * Copyright 2025 Tejus Pratap <tejzpr@gmail.com>
 *
 * See CONTRIBUTORS.md for full contributor list.
 */

package signaling

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// ClientInfo is built once per Connect and stays immutable for the
// session. It supplies the sdk/version/protocol/os/... query parameters of
// the connection URL. The room package's clientinfo.go assembles one of
// these from the system-info collector interfaces; this package only needs
// the finished value.
type ClientInfo struct {
	SDK         string
	Version     string
	Protocol    int
	OS          string
	OSVersion   string
	DeviceModel string
	NetworkType string
}

// ConnectionParams is the connection configuration, mutable only while
// disconnected. ParticipantSID, when non-empty, selects quick-reconnect
// mode; PublishOnly, when non-empty, selects publish-only mode. Nothing
// stops a caller setting both; ResolveMode then gives ParticipantSID
// precedence, and ForQuickReconnect clears PublishOnly (see reconnect.go).
type ConnectionParams struct {
	Host           string
	AuthToken      string
	AutoSubscribe  bool
	AdaptiveStream bool
	PublishOnly    string
	ParticipantSID string
}

// BuildURL assembles the signaling WebSocket URL. Parameter order is
// stable, and optional parameters are omitted entirely when unset, never
// emitted empty.
func BuildURL(params ConnectionParams, info ClientInfo) (string, error) {
	if params.Host == "" {
		return "", fmt.Errorf("signaling: host is required")
	}
	if params.AuthToken == "" {
		return "", fmt.Errorf("signaling: auth token is required")
	}

	host := params.Host
	if !strings.HasSuffix(host, "/") {
		host += "/"
	}

	var b strings.Builder
	b.WriteString(host)
	b.WriteString("rtc?access_token=")
	b.WriteString(url.QueryEscape(params.AuthToken))
	b.WriteString("&auto_subscribe=")
	b.WriteString(boolParam(params.AutoSubscribe))
	b.WriteString("&adaptive_stream=")
	b.WriteString(boolParam(params.AdaptiveStream))

	if params.PublishOnly != "" {
		b.WriteString("&publish=")
		b.WriteString(url.QueryEscape(params.PublishOnly))
	}
	if params.ParticipantSID != "" {
		b.WriteString("&reconnect=1&sid=")
		b.WriteString(url.QueryEscape(params.ParticipantSID))
	}

	b.WriteString("&sdk=")
	b.WriteString(url.QueryEscape(info.SDK))
	b.WriteString("&version=")
	b.WriteString(url.QueryEscape(info.Version))
	b.WriteString("&protocol=")
	b.WriteString(strconv.Itoa(info.Protocol))
	b.WriteString("&os=")
	b.WriteString(url.QueryEscape(info.OS))
	b.WriteString("&os_version=")
	b.WriteString(url.QueryEscape(info.OSVersion))
	b.WriteString("&device_model=")
	b.WriteString(url.QueryEscape(info.DeviceModel))
	b.WriteString("&network=")
	b.WriteString(url.QueryEscape(info.NetworkType))

	return b.String(), nil
}

func boolParam(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
