package models

import "time"

type Certificate struct {
	ID        string    `json:"_id" bson:"_id"`
	User      string    `json:"user" bson:"user"`
	CompName  string    `json:"compName" bson:"compName"`
	Year      int       `json:"year" bson:"year"`
	Field     string    `json:"field" bson:"field"`
	Image     *Image    `json:"img,omitempty" bson:"img,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	Winner    bool      `json:"winner" bson:"winner"`
}

// CertificatePatch is a sparse update; nil or empty fields are skipped.
type CertificatePatch struct {
	CompName string `json:"compName"`
	Year     int    `json:"year"`
	Field    string `json:"field"`
	Winner   *bool  `json:"winner"`
}

// Fields lists the set patch values keyed by stored field name.
func (p CertificatePatch) Fields() []PatchField {
	var out []PatchField
	if p.CompName != "" {
		out = append(out, PatchField{Name: "compName", Value: p.CompName})
	}
	if p.Year != 0 {
		out = append(out, PatchField{Name: "year", Value: p.Year})
	}
	if p.Field != "" {
		out = append(out, PatchField{Name: "field", Value: p.Field})
	}
	if p.Winner != nil {
		out = append(out, PatchField{Name: "winner", Value: *p.Winner})
	}
	return out
}

func (p CertificatePatch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

func (p CertificatePatch) Apply(dst *Certificate) {
	for _, f := range p.Fields() {
		switch f.Name {
		case "compName":
			dst.CompName = f.Value.(string)
		case "year":
			dst.Year = f.Value.(int)
		case "field":
			dst.Field = f.Value.(string)
		case "winner":
			dst.Winner = f.Value.(bool)
		}
	}
}
