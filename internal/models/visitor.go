package models

// Visitor is the single-document site hit counter (_id "visitors").
type Visitor struct {
	ID    string `bson:"_id" json:"-"`
	Count int64  `bson:"count" json:"count"`
}
