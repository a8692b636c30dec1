package scrape

import "fmt"

// Conference identifies one venue whose schedule pages share the common
// layout. FirstYear is the earliest edition with a schedule page; requested
// years before it are skipped rather than fetched.
type Conference struct {
	Name      string
	Host      string
	FirstYear int
}

// ScheduleURL is the paper listing page for one year.
func (c Conference) ScheduleURL(year int) string {
	return fmt.Sprintf("https://%s/Conferences/%d/Schedule", c.Host, year)
}

// PaperURL is the detail page for one paper id.
func (c Conference) PaperURL(year int, id string) string {
	return fmt.Sprintf("https://%s/Conferences/%d/Schedule?showEvent=%s", c.Host, year, id)
}

// AuthorURL is the detail page for one author id.
func (c Conference) AuthorURL(year int, id string) string {
	return fmt.Sprintf("https://%s/Conferences/%d/Schedule?showSpeaker=%s", c.Host, year, id)
}

// DefaultConferences lists the venues scraped when the configuration does
// not override them.
func DefaultConferences() []Conference {
	return []Conference{
		{Name: "ICML", Host: "icml.cc", FirstYear: 2017},
		{Name: "NeurIPS", Host: "neurips.cc", FirstYear: 2006},
		{Name: "ICLR", Host: "iclr.cc", FirstYear: 2018},
	}
}
