package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/berkaynayman/qr-menu/internal/api"
	"github.com/berkaynayman/qr-menu/internal/config"
	"github.com/berkaynayman/qr-menu/internal/logger"
	"github.com/berkaynayman/qr-menu/internal/menu"
	"github.com/berkaynayman/qr-menu/internal/qr"
	"github.com/berkaynayman/qr-menu/internal/stats"
	"github.com/berkaynayman/qr-menu/internal/user"
	"go.uber.org/zap"
)

const usage = `qrmenu - manage your restaurant's digital menus

Usage:
  qrmenu <command> [flags]

Account:
  register          create an owner account
  login             log in and persist the session
  logout            clear the persisted session
  profile           show the account profile
  profile-update    update the account profile

Menus:
  menus             list your menus
  menu-show         print one menu (add -public for the guest view)
  menu-create       create a menu
  menu-delete       delete a menu

Editing (loads the menu, applies the change, saves the whole document):
  add-category, rename-category, delete-category
  add-item, update-item, delete-item

Other:
  qr                render a menu QR code PNG
  stats             show the dashboard overview
`

type app struct {
	cfg   *config.Config
	users user.Service
	menus menu.Service
	board stats.Service
}

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	store := user.NewStore(cfg.CredentialsFile)
	client := api.NewClient(api.Config{BaseURL: cfg.APIBaseURL, Tokens: store})

	a := &app{
		cfg:   cfg,
		users: user.NewService(client, store),
		menus: menu.NewService(client),
		board: stats.NewService(client),
	}

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	ctx := logger.WithOperation(context.Background())
	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return a.register(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.users.Logout(ctx)
	case "profile":
		return a.profile(ctx)
	case "profile-update":
		return a.profileUpdate(ctx, args)
	case "menus":
		return a.listMenus(ctx)
	case "menu-show":
		return a.showMenu(ctx, args)
	case "menu-create":
		return a.createMenu(ctx, args)
	case "menu-delete":
		return a.deleteMenu(ctx, args)
	case "add-category", "rename-category", "delete-category",
		"add-item", "update-item", "delete-item":
		return a.editMenu(ctx, command, args)
	case "qr":
		return a.renderQR(ctx, args)
	case "stats":
		return a.dashboard(ctx)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "restaurant name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	msg, err := a.users.Register(ctx, user.RegisterParams{
		RestaurantName: *name,
		Email:          *email,
		Password:       *password,
	})
	if err != nil {
		return err
	}
	fmt.Println(msg)
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	sess, err := a.users.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("Logged in as %s (%s)\n", sess.User.RestaurantName, sess.User.Email)
	return nil
}

func (a *app) profile(ctx context.Context) error {
	p, err := a.users.Profile(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Restaurant: %s\nEmail:      %s\nPhone:      %s\n",
		p.RestaurantName, p.Email, p.PhoneNumber)
	return nil
}

func (a *app) profileUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("profile-update", flag.ExitOnError)
	name := fs.String("name", "", "restaurant name")
	email := fs.String("email", "", "account email")
	phone := fs.String("phone", "", "phone number")
	password := fs.String("password", "", "new password (optional)")
	confirm := fs.String("confirm", "", "new password confirmation")
	fs.Parse(args)

	params := user.UpdateProfileParams{
		RestaurantName: *name,
		Email:          *email,
		PhoneNumber:    *phone,
	}
	if *password != "" {
		params.Password = password
	}

	p, err := a.users.UpdateProfile(ctx, params, *confirm)
	if err != nil {
		return err
	}
	fmt.Printf("Profile updated for %s\n", p.RestaurantName)
	return nil
}

func (a *app) listMenus(ctx context.Context) error {
	menus, err := a.menus.List(ctx)
	if err != nil {
		return err
	}
	if len(menus) == 0 {
		fmt.Println("No menus yet.")
		return nil
	}
	for _, m := range menus {
		fmt.Printf("%s  %-24s %s  views: %d\n", m.ID, m.Name, m.Currency, m.ViewCount)
	}
	return nil
}

func (a *app) showMenu(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("menu-show", flag.ExitOnError)
	id := fs.String("id", "", "menu id")
	public := fs.Bool("public", false, "fetch the public (guest) view")
	fs.Parse(args)

	var m *menu.Menu
	var err error
	if *public {
		m, err = a.menus.GetPublic(ctx, *id)
	} else {
		m, err = a.menus.Get(ctx, *id)
	}
	if err != nil {
		return err
	}

	printMenu(m)
	return nil
}

func printMenu(m *menu.Menu) {
	fmt.Printf("%s (%s)\n", m.Name, m.ID)
	if m.Description != "" {
		fmt.Println(m.Description)
	}
	for _, c := range m.Categories {
		fmt.Printf("\n[%s] %s\n", c.ID, c.Name)
		for _, it := range c.Items {
			fmt.Printf("  [%s] %-24s %s\n", it.ID, it.Name, m.Currency.PriceLine(it.Price))
			if it.Description != "" {
				fmt.Printf("       %s\n", it.Description)
			}
		}
	}
	fmt.Printf("\nViews: %d\n", m.ViewCount)
}

func (a *app) createMenu(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("menu-create", flag.ExitOnError)
	name := fs.String("name", "", "menu name")
	description := fs.String("description", "", "menu description")
	currency := fs.String("currency", string(menu.USD), "currency code")
	fs.Parse(args)

	created, err := a.menus.Create(ctx, menu.Menu{
		Name:        *name,
		Description: *description,
		Currency:    menu.Currency(*currency),
		Categories:  []menu.Category{},
	})
	if err != nil {
		return err
	}
	fmt.Printf("Created menu %s (%s)\n", created.Name, created.ID)
	return nil
}

func (a *app) deleteMenu(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("menu-delete", flag.ExitOnError)
	id := fs.String("id", "", "menu id")
	fs.Parse(args)

	if err := a.menus.Delete(ctx, *id); err != nil {
		return err
	}
	fmt.Println("Menu deleted.")
	return nil
}

// editMenu is the load -> mutate -> save cycle every editing command
// shares: fetch the document, apply one pure tree operation, put the
// whole document back.
func (a *app) editMenu(ctx context.Context, command string, args []string) error {
	fs := flag.NewFlagSet(command, flag.ExitOnError)
	menuID := fs.String("menu", "", "menu id")
	categoryID := fs.String("category", "", "category id")
	itemID := fs.String("item", "", "item id")
	name := fs.String("name", "", "new name (rename-category)")
	field := fs.String("field", "", "item field: name|description|price")
	value := fs.String("value", "", "new field value")
	fs.Parse(args)

	m, err := a.menus.Get(ctx, *menuID)
	if err != nil {
		return err
	}

	switch command {
	case "add-category":
		m.Categories = menu.AddCategory(m.Categories)
	case "rename-category":
		m.Categories = menu.RenameCategory(m.Categories, *categoryID, *name)
	case "delete-category":
		m.Categories = menu.DeleteCategory(m.Categories, *categoryID)
	case "add-item":
		m.Categories = menu.AddItem(m.Categories, *categoryID)
	case "update-item":
		m.Categories = menu.UpdateItem(m.Categories, *categoryID, *itemID, menu.ItemField(*field), *value)
	case "delete-item":
		m.Categories = menu.DeleteItem(m.Categories, *categoryID, *itemID)
	}

	updated, err := a.menus.Update(ctx, *m)
	if err != nil {
		return err
	}
	printMenu(updated)
	return nil
}

func (a *app) renderQR(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("qr", flag.ExitOnError)
	menuID := fs.String("menu", "", "menu id (builds the public URL and file name)")
	url := fs.String("url", "", "explicit target URL (overrides -menu)")
	fg := fs.String("color", qr.DefaultForeground, "foreground color, #RRGGBB")
	size := fs.Int("size", qr.DefaultSize, "image size in pixels")
	style := fs.String("style", string(qr.StyleSquares), "module style: squares|dots|rounded")
	out := fs.String("out", "", "output file (default derived from the menu name)")
	fs.Parse(args)

	log := logger.FromCtx(ctx)

	target := *url
	fileName := *out
	if target == "" {
		if *menuID == "" {
			return fmt.Errorf("either -menu or -url is required")
		}
		m, err := a.menus.Get(ctx, *menuID)
		if err != nil {
			return err
		}
		target = a.cfg.PublicMenuURL + "/" + m.ID
		if fileName == "" {
			fileName = qr.FileName(m.Name)
		}
	}
	if fileName == "" {
		fileName = qr.FileName("menu")
	}

	// Render fully before touching the file so a failed encode leaves
	// any previous image in place.
	f, err := renderToFile(fileName, qr.Options{
		URL:        target,
		Foreground: *fg,
		Size:       *size,
		Style:      qr.Style(*style),
	})
	if err != nil {
		log.Error("qr render failed", zap.Error(err))
		return err
	}
	fmt.Printf("Wrote %s (%s)\n", f, target)
	return nil
}

func renderToFile(name string, opts qr.Options) (string, error) {
	tmp := name + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return "", err
	}
	if err := qr.WritePNG(f, opts); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", err
	}
	return name, os.Rename(tmp, name)
}

func (a *app) dashboard(ctx context.Context) error {
	ov, err := a.board.Overview(ctx)
	if err != nil {
		return err
	}

	s := ov.Stats
	fmt.Printf("Menus: %d  Views: %d  Categories: %d  Items: %d  Avg views/menu: %.1f\n",
		s.TotalMenus, s.TotalViews, s.TotalCategories, s.TotalItems, s.AvgViewsPerMenu)
	if s.MostViewedMenu != nil {
		fmt.Printf("Most viewed: %s (%d views)\n", s.MostViewedMenu.Name, s.MostViewedMenu.Views)
	}

	fmt.Println()
	for _, m := range ov.Menus {
		fmt.Printf("%s  %-24s views: %d\n", m.ID, m.Name, m.ViewCount)
	}
	return nil
}
