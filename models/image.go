package models

// Image is an uploaded picture embedded in the owning document.
type Image struct {
	Data        []byte `json:"data" bson:"data"`
	ContentType string `json:"contentType" bson:"contentType"`
}
