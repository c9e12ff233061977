package httpapi

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"io"
	"math/big"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/DoyleJ11/hoops-scoreboard/internal/engine"
	"github.com/DoyleJ11/hoops-scoreboard/internal/hub"
	"github.com/DoyleJ11/hoops-scoreboard/internal/session"
	"github.com/DoyleJ11/hoops-scoreboard/internal/types"
	wire "github.com/DoyleJ11/hoops-scoreboard/pkg/types"
)

const maxBodyBytes = 4 << 10

var generateCode = GenerateCode

func GenerateCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, 6)
	for i := 0; i < 6; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

type createSessionRequest struct {
	NameA *string `json:"name_a"`
	NameB *string `json:"name_b"`
}

func CreateSession(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createSessionRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		ctl := engine.NewController()
		if req.NameA != nil {
			ctl.SetName(engine.TeamA, *req.NameA)
		}
		if req.NameB != nil {
			ctl.SetName(engine.TeamB, *req.NameB)
		}

		var code string
		for {
			c, err := generateCode()
			if err != nil {
				http.Error(w, "failed to generate code", http.StatusInternalServerError)
				return
			}
			claim, err := h.Claim(r.Context(), c, ctl)
			if err != nil {
				http.Error(w, "hub unavailable", http.StatusServiceUnavailable)
				return
			}
			if !claim.Taken {
				code = c
				break
			}
			// collision on code, regenerating
		}

		writeJSON(w, http.StatusCreated, struct {
			Code string `json:"code"`
		}{Code: code})
	}
}

func GetSession(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")
		s := h.Get(r.Context(), code)
		if s == nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}

		view, err := s.View(r.Context())
		if err != nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, wire.NewSnapshot(code, view.Version, view.State, nil))
	}
}

func DeleteSession(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")
		found, err := h.Remove(r.Context(), code)
		switch {
		case err != nil:
			http.Error(w, "hub unavailable", http.StatusServiceUnavailable)
		case !found:
			http.Error(w, "session not found", http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	}
}

// PostCommand applies one ClientMessage and answers with the resulting
// snapshot, mirroring what websocket clients receive.
func PostCommand(h *hub.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")
		s := h.Get(r.Context(), code)
		if s == nil {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}

		var cm types.ClientMessage
		if err := decodeBody(r, &cm); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		cmd, err := cm.Command()
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		snap, err := s.Do(r.Context(), middleware.GetReqID(r.Context()), cmd)
		switch {
		case errors.Is(err, session.ErrClosed):
			http.Error(w, "session not found", http.StatusNotFound)
			return
		case err != nil:
			writeError(w, http.StatusBadRequest, err)
			return
		}

		writeJSON(w, http.StatusOK, types.SnapshotMessage(wire.NewSnapshot(code, snap.Version, snap.State, snap.Events)))
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return errors.New("bad json")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, types.ErrorMessage(err))
}
