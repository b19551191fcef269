package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/jfraser/whosaid/internal/model"
)

const (
	defaultQRSize = 320
	maxQRSize     = 1024
)

// QR handles GET /api/v1/sessions/{code}/qr
// Returns a PNG QR code encoding the session's join URL, so the host can
// put the code on a shared screen for players to scan.
func (h *SessionHandler) QR(w http.ResponseWriter, r *http.Request) {
	code := model.SessionCode(mux.Vars(r)["code"])

	if _, err := h.controller.GetSession(r.Context(), code); err != nil {
		WriteError(w, err)
		return
	}

	size := defaultQRSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 64 || parsed > maxQRSize {
			WriteError(w, NewInvalidRequestError("size must be an integer between 64 and 1024"))
			return
		}
		size = parsed
	}

	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	joinURL := scheme + "://" + r.Host + "/join/" + string(code)

	png, err := qrcode.Encode(joinURL, qrcode.Medium, size)
	if err != nil {
		WriteError(w, NewInternalError())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(png)
}
