// Package model defines the catalog entity types served by the API and
// stored in the search backend.
//
// Entities are immutable value objects once constructed. IDs are opaque
// strings assigned by the document store; the msgpack tags drive the cache
// codec, the json tags drive both the document-store decoding and the API
// responses.
package model

// PersonRef is a compact reference to a person embedded in a film document.
type PersonRef struct {
	ID   string `json:"id" msgpack:"id"`
	Name string `json:"name" msgpack:"name"`
}

// Film is the full film document from the "movies" collection.
type Film struct {
	ID          string      `json:"id" msgpack:"id"`
	Title       string      `json:"title" msgpack:"title"`
	IMDBRating  float64     `json:"imdb_rating" msgpack:"imdb_rating"`
	Description string      `json:"description,omitempty" msgpack:"description,omitempty"`
	Genre       []string    `json:"genre,omitempty" msgpack:"genre,omitempty"`
	Director    string      `json:"director,omitempty" msgpack:"director,omitempty"`
	Actors      []PersonRef `json:"actors,omitempty" msgpack:"actors,omitempty"`
	Writers     []PersonRef `json:"writers,omitempty" msgpack:"writers,omitempty"`
}

// Genre is a film genre from the "genre" collection.
type Genre struct {
	ID   string `json:"id" msgpack:"id"`
	Name string `json:"name" msgpack:"name"`
}

// FilmRef is a compact reference to a film embedded in a person document,
// including the role the person had in it.
type FilmRef struct {
	ID         string  `json:"id" msgpack:"id"`
	Title      string  `json:"title" msgpack:"title"`
	IMDBRating float64 `json:"imdb_rating" msgpack:"imdb_rating"`
	Role       string  `json:"role" msgpack:"role"`
}

// Person is a person document from the "person" collection.
type Person struct {
	ID       string    `json:"id" msgpack:"id"`
	FullName string    `json:"full_name" msgpack:"full_name"`
	Films    []FilmRef `json:"films,omitempty" msgpack:"films,omitempty"`
}
