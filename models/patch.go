package models

// PatchField is one value of a sparse update. Name is the stored field name
// as it appears in the bson tags.
type PatchField struct {
	Name  string
	Value any
}
