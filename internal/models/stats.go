package models

// Stats are always recomputed from the full record slice, never maintained
// incrementally.

func DeriveRSVPStats(rsvps []RSVP) RSVPStats {
	stats := RSVPStats{Total: len(rsvps)}
	for _, r := range rsvps {
		switch r.Attendance {
		case AttendanceYes:
			stats.Attending++
		case AttendanceNo:
			stats.NotAttending++
		}
		stats.TotalGuests += r.Guests.Int()
	}
	return stats
}

func DerivePlaylistStats(songs []Song) PlaylistStats {
	submitters := make(map[string]struct{}, len(songs))
	for _, s := range songs {
		submitters[s.Submitter] = struct{}{}
	}
	return PlaylistStats{Total: len(songs), Contributors: len(submitters)}
}

func DeriveGalleryStats(photos []Photo) GalleryStats {
	uploaders := make(map[string]struct{}, len(photos))
	for _, p := range photos {
		uploaders[p.Uploader] = struct{}{}
	}
	return GalleryStats{Total: len(photos), Contributors: len(uploaders)}
}

func DeriveWishlistStats(items []WishlistItem) WishlistStats {
	stats := WishlistStats{Total: len(items)}
	for _, item := range items {
		if item.Purchased {
			stats.Purchased++
		} else if item.IsVisible() {
			stats.Available++
		}
	}
	return stats
}
