package controllers

import (
	"net/http"
	"weddingsite/internal/models"
	"weddingsite/internal/services"
)

type itemResponse struct {
	Status  string               `json:"status"`
	Message string               `json:"message"`
	Item    *models.WishlistItem `json:"item"`
}

type WishlistController struct {
	*ApiController
	service services.WishlistServiceInterface
}

func NewWishlistController(api *ApiController, service services.WishlistServiceInterface) *WishlistController {
	return &WishlistController{ApiController: api, service: service}
}

func (c *WishlistController) List(w http.ResponseWriter, r *http.Request) {
	c.writeJSON(w, http.StatusOK, c.service.List(false))
}

func (c *WishlistController) All(w http.ResponseWriter, r *http.Request) {
	c.writeJSON(w, http.StatusOK, c.service.List(true))
}

func (c *WishlistController) Create(w http.ResponseWriter, r *http.Request) {
	var input services.WishlistInput
	if !c.decode(w, r, &input) {
		return
	}
	item, err := c.service.Create(&input)
	if err != nil {
		c.writeError(w, r, err, "Unable to add item")
		return
	}
	c.writeJSON(w, http.StatusOK, itemResponse{Status: statusSuccess, Message: "Item added", Item: item})
}

func (c *WishlistController) Update(w http.ResponseWriter, r *http.Request) {
	body, ok := c.readBody(w, r)
	if !ok {
		return
	}
	item, err := c.service.Update(r.PathValue("id"), body)
	if err != nil {
		c.writeError(w, r, err, "Unable to update item")
		return
	}
	c.writeJSON(w, http.StatusOK, itemResponse{Status: statusSuccess, Message: "Item updated", Item: item})
}

func (c *WishlistController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Delete(r.PathValue("id")); err != nil {
		c.writeError(w, r, err, "Unable to delete item")
		return
	}
	c.writeMessage(w, http.StatusOK, statusSuccess, "Item deleted")
}
