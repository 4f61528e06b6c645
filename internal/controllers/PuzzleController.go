package controllers

import (
	"carhoot/internal/models"
	"carhoot/internal/providers"
	"carhoot/internal/services"
	"net/http"
)

type PuzzleController struct {
	logger  providers.Logger
	service services.GameServiceInterface
}

func NewPuzzleController(logger providers.Logger, service services.GameServiceInterface) *PuzzleController {
	return &PuzzleController{
		logger:  logger,
		service: service,
	}
}

type modeRequest struct {
	Mode string `json:"mode"`
}

type guessRequest struct {
	Mode     string `json:"mode"`
	Value    string `json:"value"`
	Nickname string `json:"nickname"`
}

type resolveRequest struct {
	Resolution string `json:"resolution"`
}

func (pc *PuzzleController) mode(w http.ResponseWriter, raw string) (models.Mode, bool) {
	mode, ok := models.ParseMode(raw)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown mode " + raw})
	}
	return mode, ok
}

func (pc *PuzzleController) Today(w http.ResponseWriter, r *http.Request) {
	mode, ok := pc.mode(w, r.URL.Query().Get("mode"))
	if !ok {
		return
	}
	view, err := pc.service.Today(r.Context(), clientID(r), mode)
	if err != nil {
		writeError(w, pc.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (pc *PuzzleController) Guess(w http.ResponseWriter, r *http.Request) {
	var payload guessRequest
	if !decode(w, r, &payload) {
		return
	}
	mode, ok := pc.mode(w, payload.Mode)
	if !ok {
		return
	}
	res, err := pc.service.Guess(r.Context(), clientID(r), mode, payload.Value, payload.Nickname)
	if err != nil {
		writeError(w, pc.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (pc *PuzzleController) Hint(w http.ResponseWriter, r *http.Request) {
	var payload modeRequest
	if !decode(w, r, &payload) {
		return
	}
	mode, ok := pc.mode(w, payload.Mode)
	if !ok {
		return
	}
	hint, err := pc.service.Hint(r.Context(), clientID(r), mode)
	if err != nil {
		writeError(w, pc.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, hint)
}

func (pc *PuzzleController) Resolve(w http.ResponseWriter, r *http.Request) {
	var payload resolveRequest
	if !decode(w, r, &payload) {
		return
	}
	resolution, ok := models.ParseResolution(payload.Resolution)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "resolution must be continue or reveal"})
		return
	}
	view, err := pc.service.Resolve(r.Context(), clientID(r), resolution)
	if err != nil {
		writeError(w, pc.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (pc *PuzzleController) Reset(w http.ResponseWriter, r *http.Request) {
	var payload modeRequest
	if !decode(w, r, &payload) {
		return
	}
	mode, ok := pc.mode(w, payload.Mode)
	if !ok {
		return
	}
	view, err := pc.service.Reset(r.Context(), clientID(r), mode)
	if err != nil {
		writeError(w, pc.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
