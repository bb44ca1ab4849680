package controllers

import (
	"fmt"
	"net/http"
	"weddingsite/internal/models"
	"weddingsite/internal/services"
	"weddingsite/internal/structures"
)

const photosField = "photos"

type uploadResponse struct {
	Status  string              `json:"status"`
	Message string              `json:"message"`
	Stats   models.GalleryStats `json:"stats"`
	Photos  []models.Photo      `json:"photos"`
}

type GalleryController struct {
	*ApiController
	service      services.GalleryServiceInterface
	maxFormBytes int64
}

func NewGalleryController(api *ApiController, service services.GalleryServiceInterface, conf *structures.Config) *GalleryController {
	return &GalleryController{
		ApiController: api,
		service:       service,
		maxFormBytes:  conf.Uploads.MaxFileSize*int64(conf.Uploads.MaxFiles) + maxRequestBodySize,
	}
}

func (c *GalleryController) List(w http.ResponseWriter, r *http.Request) {
	c.writeJSON(w, http.StatusOK, c.service.List())
}

func (c *GalleryController) GuestUpload(w http.ResponseWriter, r *http.Request) {
	c.upload(w, r, c.service.GuestUpload)
}

func (c *GalleryController) AdminUpload(w http.ResponseWriter, r *http.Request) {
	c.upload(w, r, c.service.AdminUpload)
}

func (c *GalleryController) upload(w http.ResponseWriter, r *http.Request, handle func(*services.UploadInput) (*services.UploadResult, error)) {
	if !c.parseMultipart(w, r, c.maxFormBytes) {
		return
	}
	defer r.MultipartForm.RemoveAll()

	input := &services.UploadInput{
		Uploader:    r.FormValue("uploader"),
		Description: r.FormValue("description"),
		Files:       r.MultipartForm.File[photosField],
	}
	result, err := handle(input)
	if err != nil {
		c.writeError(w, r, err, "Unable to upload photos")
		return
	}
	c.writeJSON(w, http.StatusOK, uploadResponse{
		Status:  statusSuccess,
		Message: fmt.Sprintf("%d photo(s) uploaded", len(result.Photos)),
		Stats:   result.Stats,
		Photos:  result.Photos,
	})
}

func (c *GalleryController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Delete(r.PathValue("id")); err != nil {
		c.writeError(w, r, err, "Unable to delete photo")
		return
	}
	c.writeMessage(w, http.StatusOK, statusSuccess, "Photo deleted")
}
