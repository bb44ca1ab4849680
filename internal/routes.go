package internal

import (
	"net/http"
	"weddingsite/internal/controllers"
	"weddingsite/internal/providers"
	"weddingsite/internal/structures"
	"weddingsite/internal/uploads"
)

// Handlers groups the controllers the router dispatches to.
type Handlers struct {
	RSVP     *controllers.RSVPController
	Playlist *controllers.PlaylistController
	Gallery  *controllers.GalleryController
	Wishlist *controllers.WishlistController
	Links    *controllers.LinksController
	Pages    *controllers.PagesController
}

func InitRoutes(h *Handlers, auth providers.AuthProviderInterface, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/api/rsvp/stats", http.HandlerFunc(h.RSVP.Stats))
	routers.Get("/api/rsvp/all", auth.RequireFunc(h.RSVP.All))
	routers.Post("/api/rsvp", http.HandlerFunc(h.RSVP.Create))

	routers.Get("/api/playlist", http.HandlerFunc(h.Playlist.List))
	routers.Post("/api/playlist", http.HandlerFunc(h.Playlist.Create))

	routers.Get("/api/gallery", http.HandlerFunc(h.Gallery.List))
	routers.Post("/api/gallery/upload", http.HandlerFunc(h.Gallery.GuestUpload))
	routers.Post("/api/gallery/upload/admin", auth.RequireFunc(h.Gallery.AdminUpload))
	routers.Delete("/api/gallery/{id}", auth.RequireFunc(h.Gallery.Delete))

	routers.Get("/api/wishlist", http.HandlerFunc(h.Wishlist.List))
	routers.Get("/api/wishlist/all", auth.RequireFunc(h.Wishlist.All))
	routers.Post("/api/wishlist", auth.RequireFunc(h.Wishlist.Create))
	routers.Put("/api/wishlist/{id}", auth.RequireFunc(h.Wishlist.Update))
	routers.Delete("/api/wishlist/{id}", auth.RequireFunc(h.Wishlist.Delete))

	routers.Get("/api/links", http.HandlerFunc(h.Links.Get))
	routers.Get("/api/links/all", auth.RequireFunc(h.Links.All))
	routers.Put("/api/links", auth.RequireFunc(h.Links.Replace))
	routers.Patch("/api/links/{index}", auth.RequireFunc(h.Links.Patch))
	routers.Post("/api/profile/upload", auth.RequireFunc(h.Links.UploadImage))
	routers.Post("/api/analytics", http.HandlerFunc(h.Links.TrackClick))

	routers.Get(uploads.UploadsPrefix, h.Pages.Static(uploads.UploadsPrefix, conf.Uploads.UploadsDir))
	routers.Get(uploads.GuestPrefix, h.Pages.Static(uploads.GuestPrefix, conf.Uploads.GuestDir))
	routers.Get(uploads.AdminPrefix, h.Pages.Static(uploads.AdminPrefix, conf.Uploads.AdminDir))

	for url, page := range controllers.PublicPages {
		routers.Get(url, h.Pages.Page(page))
	}
	routers.Get("/admin", auth.RequireFunc(h.Pages.Admin))
	routers.Any("/", http.HandlerFunc(h.Pages.Fallback))

	return routers
}
