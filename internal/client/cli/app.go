package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/dmitrijs2005/hikelog/internal/client/gateway"
	"github.com/dmitrijs2005/hikelog/internal/client/services"
	"github.com/dmitrijs2005/hikelog/internal/logging"
)

var errSignInRequired = errors.New("please log in first (use 'login' or 'register')")

type command struct {
	usage string
	auth  bool
	run   func(ctx context.Context, args []string) error
}

type App struct {
	auth   services.AuthService
	hikes  services.HikeService
	obs    services.ObservationService
	log    logging.Logger
	reader *bufio.Reader
	out    io.Writer
	cmds   map[string]command
}

type Option func(*App)

// WithIO replaces stdin/stdout.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(a *App) {
		a.reader = bufio.NewReader(in)
		a.out = out
	}
}

func WithLogger(l logging.Logger) Option {
	return func(a *App) { a.log = l }
}

func NewApp(auth services.AuthService, hikes services.HikeService, obs services.ObservationService, opts ...Option) *App {
	a := &App{
		auth:   auth,
		hikes:  hikes,
		obs:    obs,
		log:    logging.Nop(),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.cmds = a.commands()
	return a
}

func (a *App) commands() map[string]command {
	return map[string]command{
		"register":    {usage: "register", run: a.Register},
		"login":       {usage: "login", run: a.Login},
		"logout":      {usage: "logout", auth: true, run: a.Logout},
		"whoami":      {usage: "whoami", auth: true, run: a.WhoAmI},
		"profile":     {usage: "profile <username>", auth: true, run: a.PublicProfile},
		"editprofile": {usage: "editprofile", auth: true, run: a.EditProfile},
		"passwd":      {usage: "passwd", auth: true, run: a.ChangePassword},

		"hikes":     {usage: "hikes", auth: true, run: a.ListHikes},
		"allhikes":  {usage: "allhikes", auth: true, run: a.ListAllHikes},
		"hike":      {usage: "hike <id>", auth: true, run: a.ShowHike},
		"addhike":   {usage: "addhike", auth: true, run: a.AddHike},
		"edithike":  {usage: "edithike <id>", auth: true, run: a.EditHike},
		"delhike":   {usage: "delhike <id>", auth: true, run: a.DeleteHike},
		"search":    {usage: "search <name>", auth: true, run: a.SearchHikes},
		"searchall": {usage: "searchall <name>", auth: true, run: a.SearchAllHikes},

		"obs":     {usage: "obs <hikeId>", auth: true, run: a.ListObservations},
		"addobs":  {usage: "addobs <hikeId>", auth: true, run: a.AddObservation},
		"showobs": {usage: "showobs <id>", auth: true, run: a.ShowObservation},
		"editobs": {usage: "editobs <id>", auth: true, run: a.EditObservation},
		"delobs":  {usage: "delobs <id>", auth: true, run: a.DeleteObservation},
	}
}

// Run restores the stored session and blocks in the REPL until the user
// exits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "Welcome to hikelog (type 'help' for commands)")
	a.restore(ctx)
	runREPL(ctx, a, func() string { return a.status(ctx) }, a.reader, a.out)
	return nil
}

func (a *App) restore(ctx context.Context) {
	u, err := a.auth.RestoreSession(ctx)
	switch {
	case err == nil:
		fmt.Fprintf(a.out, "Signed in as %s\n", u.Username)
	case errors.Is(err, services.ErrNotSignedIn):
		fmt.Fprintln(a.out, "You are not signed in. Use 'login' or 'register'.")
	default:
		a.log.Warn(ctx, "restore session", "error", err)
		renderError(a.out, err)
	}
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	_, ok := a.auth.CurrentUser(ctx)
	return ok
}

func (a *App) status(ctx context.Context) string {
	if u, ok := a.auth.CurrentUser(ctx); ok {
		return "(" + u.Username + ") "
	}
	return ""
}

func (a *App) help(loggedIn bool) string {
	usages := []string{"help", "exit"}
	for _, c := range a.cmds {
		if loggedIn || !c.auth {
			usages = append(usages, c.usage)
		}
	}
	slices.Sort(usages)
	return "Available commands: " + strings.Join(usages, ", ")
}

func (a *App) exec(ctx context.Context, name string, args []string) (bool, error) {
	c, ok := a.cmds[name]
	if !ok {
		return false, nil
	}
	wasLoggedIn := a.isLoggedIn(ctx)
	if c.auth && !wasLoggedIn {
		return true, errSignInRequired
	}

	err := c.run(ctx, args)
	if err != nil {
		a.log.Debug(ctx, "command failed", "command", name, "error", err)
	}
	if wasLoggedIn && errors.Is(err, gateway.ErrUnauthorized) {
		renderError(a.out, err)
		fmt.Fprintln(a.out, "Your session has ended. Use 'login' to sign in again.")
		return true, nil
	}
	return true, err
}
