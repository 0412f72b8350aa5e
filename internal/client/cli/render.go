package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/hikelog/internal/client/gateway"
	"github.com/dmitrijs2005/hikelog/internal/client/models"
)

// renderError prints err the way the backend phrased it: one line per field
// for validation failures, a single line otherwise.
func renderError(w io.Writer, err error) {
	e := gateway.Normalize(err)
	if len(e.Fields) > 0 {
		fmt.Fprintln(w, "Please correct the following:")
		for _, f := range e.Fields {
			if f.Field == "" {
				fmt.Fprintf(w, "  - %s\n", f.Msg)
				continue
			}
			fmt.Fprintf(w, "  - %s: %s\n", f.Field, f.Msg)
		}
		return
	}
	fmt.Fprintln(w, "error:", e.Message)
}

func fieldError(field, msg string) error {
	return &gateway.Error{
		Kind:    gateway.KindValidation,
		Message: msg,
		Fields:  []gateway.FieldError{{Field: field, Msg: msg}},
	}
}

func parseID(field string, args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fieldError(field, "exactly one id is required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fieldError(field, "must be a positive integer")
	}
	return id, nil
}

func parseFloat(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fieldError(field, "must be a number")
	}
	return v, nil
}

// parseYesNo accepts y/yes/true and n/no/false; empty falls back to def.
func parseYesNo(field, s string, def bool) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return def, nil
	case "y", "yes", "true":
		return true, nil
	case "n", "no", "false":
		return false, nil
	}
	return false, fieldError(field, "answer y or n")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func printUser(w io.Writer, u *models.User) {
	fmt.Fprintf(w, "Username: %s\n", u.Username)
	if u.Email != "" {
		fmt.Fprintf(w, "Email:    %s\n", u.Email)
	}
	if u.Phone != "" {
		fmt.Fprintf(w, "Phone:    %s\n", u.Phone)
	}
	if u.AvatarPath != "" {
		fmt.Fprintf(w, "Avatar:   %s\n", u.AvatarPath)
	}
	if u.CreatedAt != "" {
		fmt.Fprintf(w, "Joined:   %s\n", u.CreatedAt)
	}
}

func printHike(w io.Writer, h *models.Hike) {
	fmt.Fprintf(w, "#%d %s\n", h.ID, h.Name)
	if h.Username != "" {
		fmt.Fprintf(w, "  by:          %s\n", h.Username)
	}
	fmt.Fprintf(w, "  location:    %s\n", h.Location)
	fmt.Fprintf(w, "  date:        %s\n", h.Date)
	fmt.Fprintf(w, "  length:      %s km\n", formatFloat(h.Length))
	fmt.Fprintf(w, "  difficulty:  %s\n", h.Difficulty)
	fmt.Fprintf(w, "  parking:     %s\n", yesNo(h.ParkingAvailable))
	if h.ElevationGain > 0 {
		fmt.Fprintf(w, "  elevation:   %s m\n", formatFloat(h.ElevationGain))
	}
	if h.EstimatedDuration != "" {
		fmt.Fprintf(w, "  duration:    %s\n", h.EstimatedDuration)
	}
	if h.Description != "" {
		fmt.Fprintf(w, "  description: %s\n", h.Description)
	}
}

func printHikeList(w io.Writer, l *models.HikeList) {
	if len(l.Hikes) == 0 {
		fmt.Fprintln(w, "No hikes found.")
		return
	}
	for _, h := range l.Hikes {
		fmt.Fprintf(w, "#%d  %-30s %-20s %s  %s km  %s\n",
			h.ID, h.Name, h.Location, h.Date, formatFloat(h.Length), h.Difficulty)
	}
	fmt.Fprintf(w, "%d hike(s)\n", l.Count)
}

func printObservation(w io.Writer, o *models.Observation) {
	fmt.Fprintf(w, "#%d (hike #%d) %s\n", o.ID, o.HikeID, o.Observation)
	if o.Type != "" {
		fmt.Fprintf(w, "  type:     %s\n", o.Type)
	}
	if o.Time != "" {
		fmt.Fprintf(w, "  time:     %s\n", o.Time)
	}
	if o.Comments != "" {
		fmt.Fprintf(w, "  comments: %s\n", o.Comments)
	}
	if o.Latitude != nil && o.Longitude != nil {
		fmt.Fprintf(w, "  position: %s, %s\n", formatFloat(*o.Latitude), formatFloat(*o.Longitude))
	}
	if o.PhotoPath != "" {
		fmt.Fprintf(w, "  photo:    %s\n", o.PhotoPath)
	}
}

func printObservationList(w io.Writer, l *models.ObservationList) {
	if len(l.Observations) == 0 {
		fmt.Fprintln(w, "No observations yet.")
		return
	}
	for i := range l.Observations {
		printObservation(w, &l.Observations[i])
	}
	fmt.Fprintf(w, "%d observation(s)\n", l.Count)
}
