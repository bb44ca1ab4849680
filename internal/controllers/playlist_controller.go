package controllers

import (
	"net/http"
	"weddingsite/internal/models"
	"weddingsite/internal/services"
)

type songCreateResponse struct {
	Status  string               `json:"status"`
	Message string               `json:"message"`
	Stats   models.PlaylistStats `json:"stats"`
}

type PlaylistController struct {
	*ApiController
	service services.PlaylistServiceInterface
}

func NewPlaylistController(api *ApiController, service services.PlaylistServiceInterface) *PlaylistController {
	return &PlaylistController{ApiController: api, service: service}
}

func (c *PlaylistController) List(w http.ResponseWriter, r *http.Request) {
	c.writeJSON(w, http.StatusOK, c.service.List())
}

func (c *PlaylistController) Create(w http.ResponseWriter, r *http.Request) {
	var input services.SongInput
	if !c.decode(w, r, &input) {
		return
	}
	result, err := c.service.Create(&input)
	if err != nil {
		c.writeError(w, r, err, "Unable to add song")
		return
	}
	c.writeJSON(w, http.StatusOK, songCreateResponse{
		Status:  statusSuccess,
		Message: "Song added",
		Stats:   result.Stats,
	})
}
