package controllers

import (
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"time"

	"eventboard/internal/delivery/http/helpers"
	"eventboard/internal/delivery/http/middleware"
)

// requireSelf parses the named path value as a user id and checks it against
// the authenticated user. Writes the error response itself on failure.
func requireSelf(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	pathID, ok := helpers.ParseID(r, name)
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid "+name)
		return 0, false
	}
	authID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return 0, false
	}
	if pathID != authID {
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "cannot act on behalf of another user")
		return 0, false
	}
	return pathID, true
}

// clientIP extracts the caller address without the port; X-Forwarded-For
// wins when present.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	if addr, err := netip.ParseAddrPort(r.RemoteAddr); err == nil {
		return addr.Addr().String()
	}
	return r.RemoteAddr
}

// parseTimeParam reads an optional RFC3339 query parameter.
func parseTimeParam(r *http.Request, name string) (*time.Time, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseIDList reads a repeatable int64 query parameter, also accepting
// comma-separated values.
func parseIDList(r *http.Request, name string) ([]int64, error) {
	var ids []int64
	for _, raw := range r.URL.Query()[name] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}
