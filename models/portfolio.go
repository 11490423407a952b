package models

import "time"

type Portfolio struct {
	ID          string    `json:"_id" bson:"_id"`
	User        string    `json:"user" bson:"user"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"desc" bson:"desc"`
	Type        string    `json:"type" bson:"type"`
	Slug        string    `json:"slug,omitempty" bson:"slug,omitempty"`
	Image       *Image    `json:"img,omitempty" bson:"img,omitempty"`
	Date        time.Time `json:"date" bson:"date"`
	Links       []string  `json:"links" bson:"links"`
	GithubLink  string    `json:"githubLink,omitempty" bson:"githubLink,omitempty"`
	WebsiteLink string    `json:"websiteLink,omitempty" bson:"websiteLink,omitempty"`
}

// PortfolioPatch carries the fields of a sparse update. Empty values are
// left untouched in the stored document.
type PortfolioPatch struct {
	Title       string   `json:"title"`
	Description string   `json:"desc"`
	Type        string   `json:"type"`
	Slug        string   `json:"slug"`
	Links       []string `json:"links"`
	GithubLink  string   `json:"githubLink"`
	WebsiteLink string   `json:"websiteLink"`
}

// Fields lists the non-empty patch values keyed by stored field name.
func (p PortfolioPatch) Fields() []PatchField {
	var out []PatchField
	add := func(name string, v any, set bool) {
		if set {
			out = append(out, PatchField{Name: name, Value: v})
		}
	}
	add("title", p.Title, p.Title != "")
	add("desc", p.Description, p.Description != "")
	add("type", p.Type, p.Type != "")
	add("slug", p.Slug, p.Slug != "")
	add("links", p.Links, len(p.Links) > 0)
	add("githubLink", p.GithubLink, p.GithubLink != "")
	add("websiteLink", p.WebsiteLink, p.WebsiteLink != "")
	return out
}

func (p PortfolioPatch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Apply copies the non-empty patch fields onto dst.
func (p PortfolioPatch) Apply(dst *Portfolio) {
	for _, f := range p.Fields() {
		switch f.Name {
		case "title":
			dst.Title = f.Value.(string)
		case "desc":
			dst.Description = f.Value.(string)
		case "type":
			dst.Type = f.Value.(string)
		case "slug":
			dst.Slug = f.Value.(string)
		case "links":
			dst.Links = f.Value.([]string)
		case "githubLink":
			dst.GithubLink = f.Value.(string)
		case "websiteLink":
			dst.WebsiteLink = f.Value.(string)
		}
	}
}
