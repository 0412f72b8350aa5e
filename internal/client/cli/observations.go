package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/hikelog/internal/client/models"
)

func (a *App) ListObservations(ctx context.Context, args []string) error {
	hikeID, err := parseID("hikeId", args)
	if err != nil {
		return err
	}
	l, err := a.obs.List(ctx, hikeID)
	if err != nil {
		return err
	}
	printObservationList(a.out, l)
	return nil
}

func (a *App) AddObservation(ctx context.Context, args []string) error {
	hikeID, err := parseID("hikeId", args)
	if err != nil {
		return err
	}

	var in models.ObservationInput
	if in.Observation, err = a.ask("Observation"); err != nil {
		return err
	}
	if in.Type, err = a.ask("Type, e.g. wildlife, weather (optional)"); err != nil {
		return err
	}
	if in.Time, err = a.ask("Time (optional)"); err != nil {
		return err
	}
	if in.Comments, err = a.ask("Comments (optional)"); err != nil {
		return err
	}
	if in.Latitude, err = a.askCoordinate("latitude", "Latitude (optional)"); err != nil {
		return err
	}
	if in.Longitude, err = a.askCoordinate("longitude", "Longitude (optional)"); err != nil {
		return err
	}
	if in.Photo, err = a.askFile("Photo"); err != nil {
		return err
	}

	id, err := a.obs.Create(ctx, hikeID, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Observation #%d added.\n", id)
	return nil
}

func (a *App) ShowObservation(ctx context.Context, args []string) error {
	id, err := parseID("id", args)
	if err != nil {
		return err
	}
	o, err := a.obs.Get(ctx, id)
	if err != nil {
		return err
	}
	printObservation(a.out, o)
	return nil
}

// EditObservation asks for each field in turn; empty answers keep the
// current value. The photo can be removed or replaced, not both.
func (a *App) EditObservation(ctx context.Context, args []string) error {
	id, err := parseID("id", args)
	if err != nil {
		return err
	}
	cur, err := a.obs.Get(ctx, id)
	if err != nil {
		return err
	}

	var p models.ObservationPatch
	if p.Observation, err = a.askString("Observation", cur.Observation); err != nil {
		return err
	}
	if p.Type, err = a.askString("Type", cur.Type); err != nil {
		return err
	}
	if p.Time, err = a.askString("Time", cur.Time); err != nil {
		return err
	}
	if p.Comments, err = a.askString("Comments", cur.Comments); err != nil {
		return err
	}
	if p.Latitude, err = a.askCoordinate("latitude", "Latitude (empty to keep)"); err != nil {
		return err
	}
	if p.Longitude, err = a.askCoordinate("longitude", "Longitude (empty to keep)"); err != nil {
		return err
	}
	if cur.PhotoPath != "" {
		if p.DeletePhoto, err = GetConfirmation(a.reader, "Remove the current photo?", a.out); err != nil {
			return err
		}
	}
	if !p.DeletePhoto {
		if p.Photo, err = a.askFile("New photo"); err != nil {
			return err
		}
	}

	msg, err := a.obs.Update(ctx, id, p)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) DeleteObservation(ctx context.Context, args []string) error {
	id, err := parseID("id", args)
	if err != nil {
		return err
	}
	ok, err := GetConfirmation(a.reader, fmt.Sprintf("Delete observation #%d?", id), a.out)
	if err != nil || !ok {
		return err
	}
	msg, err := a.obs.Delete(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) askCoordinate(field, prompt string) (*float64, error) {
	s, err := a.ask(prompt)
	if err != nil || s == "" {
		return nil, err
	}
	v, err := parseFloat(field, s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
