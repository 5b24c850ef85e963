package testsupport

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/filmstack/catalog/model"
)

// NewFilm builds a film entity with a fresh id and plausible defaults.
func NewFilm(title string, rating float64) model.Film {
	return model.Film{
		ID:          uuid.NewString(),
		Title:       title,
		IMDBRating:  rating,
		Description: fmt.Sprintf("test film %q", title),
		Genre:       []string{"Drama"},
		Director:    "Test Director",
		Actors: []model.PersonRef{
			{ID: uuid.NewString(), Name: "Lead Actor"},
		},
	}
}

// NewGenre builds a genre entity with a fresh id.
func NewGenre(name string) model.Genre {
	return model.Genre{ID: uuid.NewString(), Name: name}
}

// NewPerson builds a person entity with a fresh id and one film credit.
func NewPerson(fullName string) model.Person {
	return model.Person{
		ID:       uuid.NewString(),
		FullName: fullName,
		Films: []model.FilmRef{
			{ID: uuid.NewString(), Title: "Credited Film", IMDBRating: 7.5, Role: "actor"},
		},
	}
}
