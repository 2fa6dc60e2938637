package navserver

import (
	"github.com/vango-dev/client360/internal/errors"
	"github.com/vango-dev/client360/pkg/router"
)

// Frame types.
const (
	FrameReady    = "ready"
	FrameNavigate = "navigate"
	FrameScroll   = "scroll"
	FramePing     = "ping"
	FramePong     = "pong"
	FrameMount    = "mount"
	FrameNotFound = "not_found"
	FrameError    = "error"
)

// ClientFrame is a message from the browser.
type ClientFrame struct {
	Type      string `json:"type"`
	Path      string `json:"path,omitempty"`
	Direction string `json:"direction,omitempty"`
	X         int    `json:"x,omitempty"`
	Y         int    `json:"y,omitempty"`
}

// PongFrame answers a ping once every earlier frame has been handled.
type PongFrame struct {
	Type string `json:"type"`
}

// ReadyFrame opens every session.
type ReadyFrame struct {
	Type    string `json:"type"`
	Session string `json:"session"`
}

// MountFrame tells the client which view to mount.
type MountFrame struct {
	Type      string              `json:"type"`
	Route     string              `json:"route"`
	View      router.ViewID       `json:"view"`
	Path      string              `json:"path"`
	Direction string              `json:"direction"`
	Props     map[string]string   `json:"props"`
	Query     map[string][]string `json:"query,omitempty"`
}

// ScrollFrame moves the client viewport.
type ScrollFrame struct {
	Type string `json:"type"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// NotFoundFrame reports a target that matched no route.
type NotFoundFrame struct {
	Type  string        `json:"type"`
	Path  string        `json:"path"`
	Error *errors.Error `json:"error"`
}

// ErrorFrame reports any other failure.
type ErrorFrame struct {
	Type  string        `json:"type"`
	Error *errors.Error `json:"error"`
}

func newMountFrame(m *router.MatchResult, path string, dir router.Direction) MountFrame {
	f := MountFrame{
		Type:      FrameMount,
		Route:     m.Route.Name,
		View:      m.Route.View,
		Path:      path,
		Direction: dir.String(),
		Props:     m.Props(),
	}
	if len(m.Query) > 0 {
		f.Query = m.Query
	}
	return f
}
