package stats

import "github.com/berkaynayman/qr-menu/internal/menu"

// MenuRef points at the menu with the most public views. Nil when the
// account has no viewed menus yet.
type MenuRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Views int    `json:"views"`
}

// Stats is the aggregate block on the dashboard, computed server-side.
type Stats struct {
	TotalMenus      int      `json:"totalMenus"`
	TotalViews      int      `json:"totalViews"`
	TotalCategories int      `json:"totalCategories"`
	TotalItems      int      `json:"totalItems"`
	AvgViewsPerMenu float64  `json:"avgViewsPerMenu"`
	MostViewedMenu  *MenuRef `json:"mostViewedMenu"`
}

// Overview is what the dashboard screen renders: the owner's menus next
// to the aggregate stats, fetched together.
type Overview struct {
	Menus []menu.Menu
	Stats Stats
}
