package models

import "time"

const (
	AttendanceYes = "yes"
	AttendanceNo  = "no"
)

type RSVP struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Guests      FlexInt   `json:"guests"`
	Attendance  string    `json:"attendance"`
	Dietary     string    `json:"dietary,omitempty"`
	Message     string    `json:"message,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type RSVPStats struct {
	Total        int `json:"total"`
	Attending    int `json:"attending"`
	NotAttending int `json:"notAttending"`
	TotalGuests  int `json:"totalGuests"`
}

type RSVPDocument struct {
	RSVPs []RSVP    `json:"rsvps"`
	Stats RSVPStats `json:"stats"`
}

func (d *RSVPDocument) Reset() {
	*d = RSVPDocument{RSVPs: []RSVP{}}
}

func (d *RSVPDocument) DeriveStats() {
	d.Stats = DeriveRSVPStats(d.RSVPs)
}

func (d *RSVPDocument) Count() int {
	return len(d.RSVPs)
}
