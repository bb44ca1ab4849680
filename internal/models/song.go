package models

import "time"

type Song struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Artist      string    `json:"artist"`
	Genre       string    `json:"genre,omitempty"`
	Mood        string    `json:"mood,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	Submitter   string    `json:"submitter"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type PlaylistStats struct {
	Total        int `json:"total"`
	Contributors int `json:"contributors"`
}

type PlaylistDocument struct {
	Songs []Song        `json:"songs"`
	Stats PlaylistStats `json:"stats"`
}

func (d *PlaylistDocument) Reset() {
	*d = PlaylistDocument{Songs: []Song{}}
}

func (d *PlaylistDocument) DeriveStats() {
	d.Stats = DerivePlaylistStats(d.Songs)
}

func (d *PlaylistDocument) Count() int {
	return len(d.Songs)
}
