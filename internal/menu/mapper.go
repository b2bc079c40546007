package menu

// Payload is the wire shape for create and update calls. The backend
// replaces the whole document on update; there is no field-level patch.
type Payload struct {
	MenuName        string     `json:"menuName"`
	MenuDescription string     `json:"menuDescription"`
	Currency        string     `json:"currency"`
	Categories      []Category `json:"categories"`
}

// Document is the wire shape the backend returns for a menu. The id
// comes back under "_id".
type Document struct {
	ID              string     `json:"_id"`
	MenuName        string     `json:"menuName"`
	MenuDescription string     `json:"menuDescription"`
	Currency        string     `json:"currency"`
	Categories      []Category `json:"categories"`
	ViewCount       int        `json:"viewCount"`
	QRCode          string     `json:"qrCode,omitempty"`
}

func ToPayload(m Menu) Payload {
	categories := m.Categories
	if categories == nil {
		categories = []Category{}
	}
	return Payload{
		MenuName:        m.Name,
		MenuDescription: m.Description,
		Currency:        string(m.Currency),
		Categories:      categories,
	}
}

func FromDocument(d Document) Menu {
	categories := d.Categories
	if categories == nil {
		categories = []Category{}
	}
	return Menu{
		ID:          d.ID,
		Name:        d.MenuName,
		Description: d.MenuDescription,
		Currency:    Currency(d.Currency),
		Categories:  categories,
		ViewCount:   d.ViewCount,
		QRCode:      d.QRCode,
	}
}

func FromDocuments(docs []Document) []Menu {
	menus := make([]Menu, 0, len(docs))
	for _, d := range docs {
		menus = append(menus, FromDocument(d))
	}
	return menus
}
