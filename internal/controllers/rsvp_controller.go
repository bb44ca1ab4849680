package controllers

import (
	"net/http"
	"weddingsite/internal/models"
	"weddingsite/internal/services"
)

type rsvpCreateResponse struct {
	Status  string           `json:"status"`
	Message string           `json:"message"`
	Stats   models.RSVPStats `json:"stats"`
}

type RSVPController struct {
	*ApiController
	service services.RSVPServiceInterface
}

func NewRSVPController(api *ApiController, service services.RSVPServiceInterface) *RSVPController {
	return &RSVPController{ApiController: api, service: service}
}

func (c *RSVPController) Create(w http.ResponseWriter, r *http.Request) {
	var input services.RSVPInput
	if !c.decode(w, r, &input) {
		return
	}
	result, err := c.service.Create(&input)
	if err != nil {
		c.writeError(w, r, err, "Unable to save RSVP")
		return
	}
	c.writeJSON(w, http.StatusOK, rsvpCreateResponse{
		Status:  statusSuccess,
		Message: "RSVP saved",
		Stats:   result.Stats,
	})
}

func (c *RSVPController) Stats(w http.ResponseWriter, r *http.Request) {
	c.writeJSON(w, http.StatusOK, c.service.Stats())
}

func (c *RSVPController) All(w http.ResponseWriter, r *http.Request) {
	c.writeJSON(w, http.StatusOK, c.service.All())
}
