// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/olegiv/aptms/internal/model"
)

// logAndInternalError logs an error and writes a 500 Internal Server Error response.
func logAndInternalError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, logMsg string, args ...any) {
	logger.ErrorContext(r.Context(), logMsg, args...)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// localPath returns the path of raw if it is a path on this site, or "/"
// otherwise. Query and fragment are dropped. The decoded path is checked
// as well as raw: it is what ends up in Location.
func localPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "/"
	}
	if !model.IsLocalPath(raw) || !model.IsLocalPath(u.Path) {
		return "/"
	}
	return u.Path
}
