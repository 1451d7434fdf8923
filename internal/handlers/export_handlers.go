package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/community-events/app/internal/events"
	"github.com/emersion/go-ical"
	"github.com/skip2/go-qrcode"
)

// EventICS serves the event as an iCalendar download so attendees can
// add it to their own calendars.
func EventICS(svc *events.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		event, err := svc.LookupEvent(id)
		if err != nil {
			respondError(w, err)
			return
		}

		ve := ical.NewComponent(ical.CompEvent)
		ve.Props.SetText(ical.PropUID, fmt.Sprintf("event-%d@community-events", event.ID))
		ve.Props.SetText(ical.PropSummary, event.Title)
		ve.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())
		ve.Props.SetDateTime(ical.PropDateTimeStart, event.StartTime)
		ve.Props.SetDateTime(ical.PropDateTimeEnd, event.EndTime)
		if event.Description != "" {
			ve.Props.SetText(ical.PropDescription, event.Description)
		}
		ve.Props.SetText(ical.PropLocation, fmt.Sprintf("%s, %s, %s, %s",
			event.Location.Name, event.Location.Address,
			event.Location.City, event.Location.State))

		cal := ical.NewCalendar()
		cal.Props.SetText(ical.PropVersion, "2.0")
		cal.Props.SetText(ical.PropProductID, "-//community-events//EN")
		cal.Children = append(cal.Children, ve)

		w.Header().Set("Content-Type", "text/calendar")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=event-%d.ics", event.ID))
		if err := ical.NewEncoder(w).Encode(cal); err != nil {
			respondError(w, err)
		}
	}
}

// EventQRCode serves a PNG QR code linking to the event page, for
// flyers and door check-in.
func EventQRCode(baseURL string, svc *events.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		event, err := svc.LookupEvent(id)
		if err != nil {
			respondError(w, err)
			return
		}

		png, err := qrcode.Encode(fmt.Sprintf("%s/events/%d", baseURL, event.ID),
			qrcode.Medium, 256)
		if err != nil {
			respondError(w, err)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(png)
	}
}
