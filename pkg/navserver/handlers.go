package navserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	cerrors "github.com/vango-dev/client360/internal/errors"
	"github.com/vango-dev/client360/pkg/router"
	"github.com/vango-dev/client360/pkg/shell"
)

// RouteInfo describes one table entry on /_routes.
type RouteInfo struct {
	router.RoutePattern
	Params []string `json:"params"`
}

// ResolveResponse is the /_resolve body for a matched path.
type ResolveResponse struct {
	Route       string              `json:"route"`
	View        router.ViewID       `json:"view"`
	Path        string              `json:"path"`
	Params      router.Params       `json:"params"`
	Props       map[string]string   `json:"props"`
	Query       map[string][]string `json:"query,omitempty"`
	Breadcrumbs any                 `json:"breadcrumbs,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	routes := s.table.Routes()
	out := make([]RouteInfo, len(routes))
	for i, rp := range routes {
		names, _ := s.table.ParamNames(rp.Name)
		if names == nil {
			names = []string{}
		}
		out[i] = RouteInfo{RoutePattern: rp, Params: names}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("path")
	if raw == "" {
		writeJSON(w, http.StatusBadRequest, ErrorFrame{
			Type:  FrameError,
			Error: cerrors.New("E301").WithDetail("The path query parameter is required."),
		})
		return
	}

	result, err := s.table.MatchPath(raw)
	if err != nil {
		s.writeNotFound(w, raw, err)
		return
	}

	resp := ResolveResponse{
		Route:  result.Route.Name,
		View:   result.Route.View,
		Path:   router.ParseTarget(raw).Path,
		Params: result.Params,
		Props:  result.Props(),
	}
	if resp.Params == nil {
		resp.Params = router.Params{}
	}
	if len(result.Query) > 0 {
		resp.Query = result.Query
	}
	if s.crumbs != nil {
		trail, err := s.crumbs(result)
		if err != nil {
			s.logger.Warn("breadcrumbs failed", "route", result.Route.Name, "error", err)
		} else {
			resp.Breadcrumbs = trail
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeNotFound(w http.ResponseWriter, path string, err error) {
	writeJSON(w, http.StatusNotFound, NotFoundFrame{
		Type:  FrameNotFound,
		Path:  path,
		Error: cerrors.Classify(err, "E300"),
	})
}

func (s *Server) handleAsset(w http.ResponseWriter, r *http.Request) {
	name := "assets/" + chi.URLParam(r, "*")
	s.serveAsset(w, r, name, "public, max-age=31536000, immutable")
}

// handleShell serves index.html for every path the table matches.
func (s *Server) handleShell(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	result, err := s.table.Match(router.NavigationTarget{
		Path:  r.URL.EscapedPath(),
		Query: r.URL.RawQuery,
	})
	if err != nil {
		http.Error(w, "route not found", http.StatusNotFound)
		return
	}

	w.Header().Set("X-Client360-Route", result.Route.Name)
	s.serveAsset(w, r, s.config.Index, "no-cache")
}

func (s *Server) serveAsset(w http.ResponseWriter, r *http.Request, name, cacheControl string) {
	asset, err := s.shell.Open(r.Context(), name)
	if err != nil {
		switch {
		case errors.Is(err, shell.ErrNotExist), errors.Is(err, shell.ErrInvalidName):
			http.Error(w, "asset not found", http.StatusNotFound)
		default:
			s.logger.Error("shell unavailable", "asset", name, "error", err)
			http.Error(w, "shell unavailable", http.StatusServiceUnavailable)
		}
		return
	}
	defer asset.Body.Close()

	h := w.Header()
	h.Set("Content-Type", asset.ContentType)
	h.Set("Cache-Control", cacheControl)
	if !asset.ModTime.IsZero() {
		h.Set("Last-Modified", asset.ModTime.UTC().Format(http.TimeFormat))
	}
	if asset.Size > 0 {
		h.Set("Content-Length", strconv.FormatInt(asset.Size, 10))
	}
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.Copy(w, asset.Body); err != nil {
		s.logger.Debug("asset write failed", "asset", name, "error", err)
	}
}
