package menu

import (
	"strconv"
	"sync"
	"time"
)

// Defaults applied to freshly added rows, matching what the editor
// screens pre-fill before the owner types anything.
const (
	DefaultCategoryName    = "New Category"
	DefaultItemName        = "New Item"
	DefaultItemDescription = "Description"
	DefaultItemPrice       = "0.00"
)

// ItemField names the single item field an UpdateItem call replaces.
type ItemField string

const (
	FieldName        ItemField = "name"
	FieldDescription ItemField = "description"
	FieldPrice       ItemField = "price"
)

var (
	idMu   sync.Mutex
	lastID int64
)

// NewID produces a provisional row id: the current Unix-millisecond
// timestamp as a string, bumped past the previous value when two calls
// land on the same millisecond. Ids are provisional until the document
// is persisted; the server owns the menu's own id.
func NewID() string {
	idMu.Lock()
	defer idMu.Unlock()

	now := time.Now().UnixMilli()
	if now <= lastID {
		now = lastID + 1
	}
	lastID = now
	return strconv.FormatInt(now, 10)
}

// The editing operations below are pure: they never mutate their input
// and return a freshly allocated tree, so a reader holding the previous
// snapshot keeps seeing a consistent document. Operations referencing an
// unknown id return the input unchanged (still as a fresh copy) instead
// of failing; the screens rely on that.

// AddCategory appends an empty category with a generated id.
func AddCategory(categories []Category) []Category {
	out := cloneCategories(categories)
	return append(out, Category{
		ID:    NewID(),
		Name:  DefaultCategoryName,
		Items: []Item{},
	})
}

// RenameCategory replaces the name of the matching category.
func RenameCategory(categories []Category, categoryID, name string) []Category {
	out := cloneCategories(categories)
	for i := range out {
		if out[i].ID == categoryID {
			out[i].Name = name
			break
		}
	}
	return out
}

// DeleteCategory removes the category along with its items.
func DeleteCategory(categories []Category, categoryID string) []Category {
	out := make([]Category, 0, len(categories))
	for _, c := range categories {
		if c.ID == categoryID {
			continue
		}
		out = append(out, cloneCategory(c))
	}
	return out
}

// AddItem appends a default item to the named category.
func AddItem(categories []Category, categoryID string) []Category {
	out := cloneCategories(categories)
	for i := range out {
		if out[i].ID == categoryID {
			out[i].Items = append(out[i].Items, Item{
				ID:          NewID(),
				Name:        DefaultItemName,
				Description: DefaultItemDescription,
				Price:       DefaultItemPrice,
			})
			break
		}
	}
	return out
}

// UpdateItem sets one field on the matching item.
func UpdateItem(categories []Category, categoryID, itemID string, field ItemField, value string) []Category {
	out := cloneCategories(categories)
	for i := range out {
		if out[i].ID != categoryID {
			continue
		}
		for j := range out[i].Items {
			if out[i].Items[j].ID != itemID {
				continue
			}
			switch field {
			case FieldName:
				out[i].Items[j].Name = value
			case FieldDescription:
				out[i].Items[j].Description = value
			case FieldPrice:
				out[i].Items[j].Price = value
			}
			break
		}
		break
	}
	return out
}

// DeleteItem removes the item from its category.
func DeleteItem(categories []Category, categoryID, itemID string) []Category {
	out := cloneCategories(categories)
	for i := range out {
		if out[i].ID != categoryID {
			continue
		}
		items := make([]Item, 0, len(out[i].Items))
		for _, it := range out[i].Items {
			if it.ID == itemID {
				continue
			}
			items = append(items, it)
		}
		out[i].Items = items
		break
	}
	return out
}

func cloneCategories(categories []Category) []Category {
	out := make([]Category, 0, len(categories)+1)
	for _, c := range categories {
		out = append(out, cloneCategory(c))
	}
	return out
}

func cloneCategory(c Category) Category {
	items := make([]Item, len(c.Items))
	copy(items, c.Items)
	c.Items = items
	return c
}
