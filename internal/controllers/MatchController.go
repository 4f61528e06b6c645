package controllers

import (
	"carhoot/internal/game"
	"carhoot/internal/models"
	"carhoot/internal/providers"
	"carhoot/internal/services"
	"net/http"
)

type MatchController struct {
	logger  providers.Logger
	service services.MatchServiceInterface
}

func NewMatchController(logger providers.Logger, service services.MatchServiceInterface) *MatchController {
	return &MatchController{
		logger:  logger,
		service: service,
	}
}

type startMatchRequest struct {
	Players []string `json:"players"`
}

func (mc *MatchController) Start(w http.ResponseWriter, r *http.Request) {
	var payload startMatchRequest
	if !decode(w, r, &payload) {
		return
	}
	if len(payload.Players) != models.PlayersPerMatch {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "exactly two players are required"})
		return
	}
	view, err := mc.service.Start(r.Context(), [models.PlayersPerMatch]string{payload.Players[0], payload.Players[1]})
	if err != nil {
		writeError(w, mc.logger, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (mc *MatchController) Get(w http.ResponseWriter, r *http.Request) {
	view, err := mc.service.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, mc.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (mc *MatchController) Guess(w http.ResponseWriter, r *http.Request) {
	var payload game.MatchGuess
	if !decode(w, r, &payload) {
		return
	}
	res, err := mc.service.Guess(r.PathValue("id"), payload)
	if err != nil {
		writeError(w, mc.logger, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
