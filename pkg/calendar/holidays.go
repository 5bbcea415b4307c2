package calendar

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"gopkg.in/yaml.v3"
)

const (
	icsMaxFileSize  = 2 * 1024 * 1024
	icsFetchTimeout = 15 * time.Second
)

// FromStrings builds a set from ISO dates
func FromStrings(dates []string) (HolidaySet, error) {
	set := NewHolidaySet()
	for _, s := range dates {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		d, err := ParseDate(s)
		if err != nil {
			return nil, fmt.Errorf("invalid holiday date %q: %w", s, err)
		}
		set.Add(d, "")
	}
	return set, nil
}

// yamlHolidays layout of a holiday YAML file:
//
//	holidays:
//	  - date: "2025-05-01"
//	    name: Fête du Travail
type yamlHolidays struct {
	Holidays []struct {
		Date string `yaml:"date"`
		Name string `yaml:"name"`
	} `yaml:"holidays"`
}

// LoadYAML reads a holiday file in the yamlHolidays layout
func LoadYAML(r io.Reader) (HolidaySet, error) {
	var doc yamlHolidays
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return NewHolidaySet(), nil
		}
		return nil, fmt.Errorf("decode holiday yaml: %w", err)
	}

	set := NewHolidaySet()
	for _, h := range doc.Holidays {
		d, err := ParseDate(strings.TrimSpace(h.Date))
		if err != nil {
			return nil, fmt.Errorf("invalid holiday date %q: %w", h.Date, err)
		}
		set.Add(d, h.Name)
	}
	return set, nil
}

// LoadICS reads every VEVENT of an iCalendar stream as a holiday.
// Multi-day all-day events (DTEND exclusive) contribute each covered day.
func LoadICS(r io.Reader) (HolidaySet, error) {
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parse holiday ics: %w", err)
	}

	set := NewHolidaySet()
	for _, evt := range cal.Events() {
		start, err := eventDate(evt, ics.ComponentPropertyDtStart)
		if err != nil {
			continue
		}
		name := ""
		if p := evt.GetProperty(ics.ComponentPropertySummary); p != nil {
			name = strings.TrimSpace(p.Value)
		}

		end, err := eventDate(evt, ics.ComponentPropertyDtEnd)
		if err != nil || !end.After(start) {
			set.Add(start, name)
			continue
		}
		for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
			set.Add(d, name)
		}
	}
	return set, nil
}

// eventDate reads a DATE or DATE-TIME property as a calendar day
func eventDate(evt *ics.VEvent, prop ics.ComponentProperty) (time.Time, error) {
	p := evt.GetProperty(prop)
	if p == nil {
		return time.Time{}, fmt.Errorf("missing property %s", prop)
	}
	for _, layout := range []string{"20060102", "20060102T150405Z", "20060102T150405"} {
		if t, err := time.Parse(layout, p.Value); err == nil {
			return Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", p.Value)
}

// Sources locations of the holiday data to merge
type Sources struct {
	Dates    []string
	YAMLFile string
	ICS      string // file path or http(s)/webcal URL
}

// Load merges every configured source into one set.
// With no sources configured it returns an empty set.
func Load(ctx context.Context, src Sources) (HolidaySet, error) {
	set, err := FromStrings(src.Dates)
	if err != nil {
		return nil, err
	}

	if src.YAMLFile != "" {
		f, err := os.Open(src.YAMLFile)
		if err != nil {
			return nil, fmt.Errorf("open holiday file: %w", err)
		}
		fromFile, err := LoadYAML(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		set.Merge(fromFile)
	}

	if src.ICS != "" {
		rc, err := openICS(ctx, src.ICS)
		if err != nil {
			return nil, err
		}
		fromICS, err := LoadICS(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		set.Merge(fromICS)
	}

	return set, nil
}

func openICS(ctx context.Context, location string) (io.ReadCloser, error) {
	u := location
	if strings.HasPrefix(u, "webcal://") {
		u = "https://" + strings.TrimPrefix(u, "webcal://")
	}
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		f, err := os.Open(location)
		if err != nil {
			return nil, fmt.Errorf("open holiday ics: %w", err)
		}
		return f, nil
	}

	ctx, cancel := context.WithTimeout(ctx, icsFetchTimeout)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("build holiday ics request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("fetch holiday ics: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		cancel()
		return nil, fmt.Errorf("fetch holiday ics: HTTP %d", resp.StatusCode)
	}
	return &limitedBody{
		Reader: io.LimitReader(resp.Body, icsMaxFileSize),
		body:   resp.Body,
		cancel: cancel,
	}, nil
}

type limitedBody struct {
	io.Reader
	body   io.Closer
	cancel context.CancelFunc
}

func (b *limitedBody) Close() error {
	defer b.cancel()
	return b.body.Close()
}
