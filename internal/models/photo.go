package models

import "time"

type Photo struct {
	ID           string    `json:"id"`
	URL          string    `json:"url"`
	OriginalName string    `json:"originalName"`
	Uploader     string    `json:"uploader"`
	Description  string    `json:"description"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

type GalleryStats struct {
	Total        int `json:"total"`
	Contributors int `json:"contributors"`
}

type GalleryDocument struct {
	Photos []Photo      `json:"photos"`
	Stats  GalleryStats `json:"stats"`
}

func (d *GalleryDocument) Reset() {
	*d = GalleryDocument{Photos: []Photo{}}
}

func (d *GalleryDocument) DeriveStats() {
	d.Stats = DeriveGalleryStats(d.Photos)
}

func (d *GalleryDocument) Count() int {
	return len(d.Photos)
}

// IndexOf returns the position of the photo with the given id, or -1.
func (d *GalleryDocument) IndexOf(id string) int {
	for i := range d.Photos {
		if d.Photos[i].ID == id {
			return i
		}
	}
	return -1
}
