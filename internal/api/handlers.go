// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/ManuGH/m3uplus/internal/channels"
	"github.com/ManuGH/m3uplus/internal/config"
	xglog "github.com/ManuGH/m3uplus/internal/log"
	"github.com/ManuGH/m3uplus/internal/m3u"
	"github.com/ManuGH/m3uplus/internal/normalize"
	"github.com/ManuGH/m3uplus/internal/pipeline"
)

// ContentTypeM3U is the media type of exported playlists.
const ContentTypeM3U = "audio/x-mpegurl"

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// request bundles what every conversion handler needs.
type request struct {
	cfg  config.Config
	body []byte
	opts m3u.ParseOptions
}

// readRequest reads the size limited body and the parse options. It writes
// the error response itself and reports false on failure.
func (s *Server) readRequest(w http.ResponseWriter, r *http.Request) (request, bool) {
	cfg := s.cfg.Get()
	opts, err := parseOptions(r.URL.Query(), cfg)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, codeInvalidParameter, err.Error())
		return request{}, false
	}

	limit := cfg.Server.MaxBodyBytes
	if limit <= 0 {
		limit = config.DefaultMaxBodyBytes
	}
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, codeBodyTooLarge, err.Error())
			return request{}, false
		}
		writeError(w, r, http.StatusBadRequest, codeBadRequest, "read body: "+err.Error())
		return request{}, false
	}
	return request{cfg: cfg, body: body, opts: opts}, true
}

// writeParseError maps a parse failure to its response.
func (s *Server) writeParseError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, m3u.ErrMalformedPlaylist) {
		writeError(w, r, http.StatusUnprocessableEntity, codeMalformedPlaylist, err.Error())
		return
	}
	logger := xglog.WithContext(r.Context(), s.logger)
	logger.Error().Err(err).Msg("parse failed")
	writeError(w, r, http.StatusInternalServerError, codeInternal, "parse failed")
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readRequest(w, r)
	if !ok {
		return
	}
	p, err := pipeline.Parse(r.Context(), "", req.body, req.opts)
	if err != nil {
		s.writeParseError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readRequest(w, r)
	if !ok {
		return
	}
	p, err := pipeline.Parse(r.Context(), "", req.body, req.opts)
	if err != nil {
		s.writeParseError(w, r, err)
		return
	}
	out := m3u.Export(p, req.cfg.Export.ExportOptions())
	w.Header().Set("Content-Type", ContentTypeM3U)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, out)
}

func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	s.serveNormalized(w, r, "normalize", func(np *channels.NormalizedPlaylist) any {
		return np
	})
}

func (s *Server) handleBest(w http.ResponseWriter, r *http.Request) {
	s.serveNormalized(w, r, "best", func(np *channels.NormalizedPlaylist) any {
		return channels.SelectBestSources(np)
	})
}

// serveNormalized parses and normalizes the body and writes view(result).
// Identical concurrent requests share one computation.
func (s *Server) serveNormalized(w http.ResponseWriter, r *http.Request, op string, view func(*channels.NormalizedPlaylist) any) {
	req, ok := s.readRequest(w, r)
	if !ok {
		return
	}
	nopts, err := normalizeOptions(r.URL.Query(), req.cfg)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, codeInvalidParameter, err.Error())
		return
	}

	key, err := normalize.RequestHash(req.body, map[string]any{
		"op":             op,
		"strict":         req.opts.Strict,
		"prefer_catchup": nopts.PreferCatchup,
		"prefer_logo":    nopts.PreferLogo,
		"prefer_group":   nopts.PreferGroup,
	})
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, codeInternal, "hash request")
		return
	}

	ctx := r.Context()
	v, err, shared := s.flight.Do(key, func() (any, error) {
		p, err := pipeline.Parse(ctx, "", req.body, req.opts)
		if err != nil {
			return nil, err
		}
		return view(pipeline.Normalize(ctx, p, nopts)), nil
	})
	if err != nil {
		s.writeParseError(w, r, err)
		return
	}
	if shared {
		logger := xglog.WithContext(ctx, s.logger)
		logger.Debug().Str("op", op).Msg("request collapsed with an identical one")
	}
	writeJSON(w, http.StatusOK, v)
}
