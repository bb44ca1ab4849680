package models

type WishlistItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Purchased   bool   `json:"purchased"`
	Visible     *bool  `json:"visible,omitempty"`
}

// IsVisible treats a missing flag as visible.
func (i WishlistItem) IsVisible() bool {
	return i.Visible == nil || *i.Visible
}

type WishlistStats struct {
	Total     int `json:"total"`
	Purchased int `json:"purchased"`
	Available int `json:"available"`
}

type WishlistDocument struct {
	Items []WishlistItem `json:"items"`
	Stats WishlistStats  `json:"stats"`
}

func (d *WishlistDocument) Reset() {
	*d = WishlistDocument{Items: []WishlistItem{}}
}

// Seed fills a freshly created wishlist with example gifts.
func (d *WishlistDocument) Seed() {
	d.Items = []WishlistItem{
		{ID: "1", Title: "Stand mixer", Description: "A modern stand mixer for our shared kitchen", Link: "https://www.amazon.com/s?k=stand+mixer", Visible: Bool(true)},
		{ID: "2", Title: "Dinnerware set for 12", Description: "Elegant white porcelain dinnerware", Link: "https://www.amazon.com/s?k=dinnerware+set", Visible: Bool(true)},
		{ID: "3", Title: "Bed linen set", Description: "Quality cotton bed linen for our new home", Purchased: true, Visible: Bool(true)},
		{ID: "4", Title: "Espresso machine", Description: "Portafilter espresso machine for a perfect start to the day", Link: "https://www.amazon.com/s?k=espresso+machine", Visible: Bool(true)},
		{ID: "5", Title: "Cutlery set", Description: "Stainless steel cutlery for 12", Visible: Bool(true)},
		{ID: "6", Title: "Kettle", Description: "Electric kettle with temperature control", Visible: Bool(true)},
	}
}

func (d *WishlistDocument) DeriveStats() {
	d.Stats = DeriveWishlistStats(d.Items)
}

func (d *WishlistDocument) Count() int {
	return len(d.Items)
}

func (d *WishlistDocument) IndexOf(id string) int {
	for i := range d.Items {
		if d.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// VisibleOnly returns a copy of the document without hidden items. Stats are
// kept as stored.
func (d *WishlistDocument) VisibleOnly() *WishlistDocument {
	out := &WishlistDocument{Items: make([]WishlistItem, 0, len(d.Items)), Stats: d.Stats}
	for _, item := range d.Items {
		if item.IsVisible() {
			out.Items = append(out.Items, item)
		}
	}
	return out
}

func Bool(b bool) *bool {
	return &b
}
