package models

import "time"

// GeoPoint is a latitude/longitude pair.
type GeoPoint struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Location describes where a user lives or a job takes place.
type Location struct {
	City        string    `bson:"city" json:"city"`
	District    string    `bson:"district" json:"district"`
	Address     string    `bson:"address,omitempty" json:"address,omitempty"`
	Coordinates *GeoPoint `bson:"coordinates,omitempty" json:"coordinates,omitempty"`
}

// KVKKConsent records a data-processing consent (Turkish KVKK law).
type KVKKConsent struct {
	Accepted   bool      `bson:"accepted" json:"accepted"`
	AcceptedAt time.Time `bson:"acceptedAt" json:"acceptedAt"`
	IP         string    `bson:"ip" json:"ip"`
}
