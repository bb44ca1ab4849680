package controllers

import (
	"mime/multipart"
	"net/http"
	"strconv"
	"weddingsite/internal/providers"
	"weddingsite/internal/services"
	"weddingsite/internal/structures"
)

const profileImageField = "photo"

type imageUploadResponse struct {
	Status  string `json:"status"`
	URL     string `json:"url"`
	Message string `json:"message"`
}

type clickEvent struct {
	LinkTitle string `json:"linkTitle"`
	LinkURL   string `json:"linkUrl"`
	Timestamp string `json:"timestamp"`
}

type LinksController struct {
	*ApiController
	service      services.LinksServiceInterface
	maxFormBytes int64
}

func NewLinksController(api *ApiController, service services.LinksServiceInterface, conf *structures.Config) *LinksController {
	return &LinksController{
		ApiController: api,
		service:       service,
		maxFormBytes:  conf.Uploads.MaxFileSize + maxRequestBodySize,
	}
}

func (c *LinksController) Get(w http.ResponseWriter, r *http.Request) {
	c.writeJSON(w, http.StatusOK, c.service.Get(false))
}

func (c *LinksController) All(w http.ResponseWriter, r *http.Request) {
	c.writeJSON(w, http.StatusOK, c.service.Get(true))
}

func (c *LinksController) Replace(w http.ResponseWriter, r *http.Request) {
	body, ok := c.readBody(w, r)
	if !ok {
		return
	}
	cfg, err := c.service.Replace(body)
	if err != nil {
		c.writeError(w, r, err, "Unable to save links")
		return
	}
	c.writeJSON(w, http.StatusOK, cfg)
}

func (c *LinksController) Patch(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		c.writeMessage(w, http.StatusBadRequest, statusError, "invalid index")
		return
	}
	body, ok := c.readBody(w, r)
	if !ok {
		return
	}
	link, err := c.service.PatchLink(index, body)
	if err != nil {
		c.writeError(w, r, err, "Unable to save link")
		return
	}
	c.writeJSON(w, http.StatusOK, link)
}

func (c *LinksController) UploadImage(w http.ResponseWriter, r *http.Request) {
	if !c.parseMultipart(w, r, c.maxFormBytes) {
		return
	}
	defer r.MultipartForm.RemoveAll()

	var file *multipart.FileHeader
	switch files := r.MultipartForm.File[profileImageField]; len(files) {
	case 0:
	case 1:
		file = files[0]
	default:
		c.writeMessage(w, http.StatusBadRequest, statusError, "only one file allowed")
		return
	}
	url, err := c.service.UploadImage(file)
	if err != nil {
		c.writeError(w, r, err, "Unable to upload image")
		return
	}
	c.writeJSON(w, http.StatusOK, imageUploadResponse{Status: statusSuccess, URL: url, Message: "Image uploaded"})
}

// TrackClick logs a link click. Nothing is stored.
func (c *LinksController) TrackClick(w http.ResponseWriter, r *http.Request) {
	var event clickEvent
	if !c.decode(w, r, &event) {
		return
	}
	c.logger.Infof(providers.TypePost, "Analytics: %s -> %s at %s", event.LinkTitle, event.LinkURL, event.Timestamp)
	c.writeJSON(w, http.StatusOK, map[string]string{"status": statusSuccess})
}
