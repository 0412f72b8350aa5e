package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/hikelog/internal/client/models"
)

func (a *App) ListHikes(ctx context.Context, _ []string) error {
	l, err := a.hikes.List(ctx)
	if err != nil {
		return err
	}
	printHikeList(a.out, l)
	return nil
}

// ListAllHikes lists every user's hikes narrowed by an optional filter.
func (a *App) ListAllHikes(ctx context.Context, _ []string) error {
	var f models.HikeFilter
	var err error

	if f.Name, err = a.ask("Name contains (optional)"); err != nil {
		return err
	}
	if f.Location, err = a.ask("Location contains (optional)"); err != nil {
		return err
	}
	if f.Difficulty, err = a.ask("Difficulty easy/moderate/hard (optional)"); err != nil {
		return err
	}
	if f.Date, err = a.ask("Date YYYY-MM-DD (optional)"); err != nil {
		return err
	}
	if f.MinLength, err = a.askOptionalFloat("minLength", "Minimum length, km (optional)"); err != nil {
		return err
	}
	if f.MaxLength, err = a.askOptionalFloat("maxLength", "Maximum length, km (optional)"); err != nil {
		return err
	}

	l, err := a.hikes.ListAll(ctx, f)
	if err != nil {
		return err
	}
	printHikeList(a.out, l)
	return nil
}

func (a *App) ShowHike(ctx context.Context, args []string) error {
	id, err := parseID("id", args)
	if err != nil {
		return err
	}
	h, err := a.hikes.Get(ctx, id)
	if err != nil {
		return err
	}
	printHike(a.out, h)
	return nil
}

func (a *App) AddHike(ctx context.Context, _ []string) error {
	var in models.HikeInput
	var err error

	if in.Name, err = a.ask("Name"); err != nil {
		return err
	}
	if in.Location, err = a.ask("Location"); err != nil {
		return err
	}
	if in.Date, err = a.ask("Date (YYYY-MM-DD)"); err != nil {
		return err
	}
	s, err := a.ask("Length, km")
	if err != nil {
		return err
	}
	if in.Length, err = parseFloat("length", s); err != nil {
		return err
	}
	if in.Difficulty, err = a.ask("Difficulty (easy/moderate/hard)"); err != nil {
		return err
	}
	if s, err = a.ask("Parking available? (y/N)"); err != nil {
		return err
	}
	if in.ParkingAvailable, err = parseYesNo("parkingAvailable", s, false); err != nil {
		return err
	}
	if in.ElevationGain, err = a.askOptionalFloat("elevationGain", "Elevation gain, m (optional)"); err != nil {
		return err
	}
	if in.EstimatedDuration, err = a.ask("Estimated duration (optional)"); err != nil {
		return err
	}
	if in.Description, err = a.ask("Description (optional)"); err != nil {
		return err
	}

	h, err := a.hikes.Create(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Hike #%d created.\n", h.ID)
	return nil
}

// EditHike walks through the fields of an existing hike; an empty answer
// keeps the current value and only changed fields are sent.
func (a *App) EditHike(ctx context.Context, args []string) error {
	id, err := parseID("id", args)
	if err != nil {
		return err
	}
	cur, err := a.hikes.Get(ctx, id)
	if err != nil {
		return err
	}

	var p models.HikePatch
	if p.Name, err = a.askString("Name", cur.Name); err != nil {
		return err
	}
	if p.Location, err = a.askString("Location", cur.Location); err != nil {
		return err
	}
	if p.Date, err = a.askString("Date", cur.Date); err != nil {
		return err
	}
	if p.Length, err = a.askFloat("length", "Length, km", cur.Length); err != nil {
		return err
	}
	if p.Difficulty, err = a.askString("Difficulty", cur.Difficulty); err != nil {
		return err
	}
	s, err := a.ask(fmt.Sprintf("Parking available? [%s]", yesNo(cur.ParkingAvailable)))
	if err != nil {
		return err
	}
	parking, err := parseYesNo("parkingAvailable", s, cur.ParkingAvailable)
	if err != nil {
		return err
	}
	if parking != cur.ParkingAvailable {
		p.ParkingAvailable = &parking
	}
	if p.ElevationGain, err = a.askFloat("elevationGain", "Elevation gain, m", cur.ElevationGain); err != nil {
		return err
	}
	if p.EstimatedDuration, err = a.askString("Estimated duration", cur.EstimatedDuration); err != nil {
		return err
	}
	if p.Description, err = a.askString("Description", cur.Description); err != nil {
		return err
	}

	msg, err := a.hikes.Update(ctx, id, p)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) DeleteHike(ctx context.Context, args []string) error {
	id, err := parseID("id", args)
	if err != nil {
		return err
	}
	ok, err := GetConfirmation(a.reader, fmt.Sprintf("Delete hike #%d and all its observations?", id), a.out)
	if err != nil || !ok {
		return err
	}
	msg, err := a.hikes.Delete(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) SearchHikes(ctx context.Context, args []string) error {
	l, err := a.hikes.Search(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	printHikeList(a.out, l)
	return nil
}

func (a *App) SearchAllHikes(ctx context.Context, args []string) error {
	l, err := a.hikes.SearchAll(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}
	printHikeList(a.out, l)
	return nil
}

// askString returns nil when the answer is empty or equals cur.
func (a *App) askString(prompt, cur string) (*string, error) {
	s, err := a.ask(fmt.Sprintf("%s [%s]", prompt, cur))
	if err != nil || s == "" || s == cur {
		return nil, err
	}
	return &s, nil
}

// askFloat returns nil when the answer is empty or equals cur.
func (a *App) askFloat(field, prompt string, cur float64) (*float64, error) {
	s, err := a.ask(fmt.Sprintf("%s [%s]", prompt, formatFloat(cur)))
	if err != nil || s == "" {
		return nil, err
	}
	v, err := parseFloat(field, s)
	if err != nil || v == cur {
		return nil, err
	}
	return &v, nil
}

func (a *App) askOptionalFloat(field, prompt string) (float64, error) {
	s, err := a.ask(prompt)
	if err != nil || s == "" {
		return 0, err
	}
	return parseFloat(field, s)
}
