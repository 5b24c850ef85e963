package cache

import (
	"reflect"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/filmstack/catalog/model"
)

func TestCodec_EntityRoundTrip(t *testing.T) {
	film := model.Film{
		ID:         "f1",
		Title:      "Dune",
		IMDBRating: 8.0,
		Genre:      []string{"Sci-Fi", "Adventure"},
		Actors:     []model.PersonRef{{ID: "p1", Name: "Timothée Chalamet"}},
	}

	payload, err := EncodeEntity(film)
	if err != nil {
		t.Fatalf("EncodeEntity: %v", err)
	}

	got, err := DecodeEntity[model.Film](payload)
	if err != nil {
		t.Fatalf("DecodeEntity: %v", err)
	}
	if !reflect.DeepEqual(film, got) {
		t.Errorf("round trip changed the entity:\nin:  %+v\nout: %+v", film, got)
	}
}

func TestCodec_ListPreservesOrder(t *testing.T) {
	genres := []model.Genre{
		{ID: "g3", Name: "Western"},
		{ID: "g1", Name: "Drama"},
		{ID: "g2", Name: "Noir"},
	}

	payload, err := EncodeList(genres)
	if err != nil {
		t.Fatalf("EncodeList: %v", err)
	}

	got, err := DecodeList[model.Genre](payload)
	if err != nil {
		t.Fatalf("DecodeList: %v", err)
	}
	if !reflect.DeepEqual(genres, got) {
		t.Errorf("list order or content changed:\nin:  %+v\nout: %+v", genres, got)
	}
}

func TestCodec_KindMismatchIsDecodeError(t *testing.T) {
	payload, err := EncodeEntity(model.Genre{ID: "g1", Name: "Drama"})
	if err != nil {
		t.Fatalf("EncodeEntity: %v", err)
	}

	if _, err := DecodeList[model.Genre](payload); !errors.Is(err, ErrDecode) {
		t.Errorf("decoding an entity payload as a list: err = %v, want ErrDecode", err)
	}

	listPayload, err := EncodeList([]model.Genre{{ID: "g1", Name: "Drama"}})
	if err != nil {
		t.Fatalf("EncodeList: %v", err)
	}
	if _, err := DecodeEntity[model.Genre](listPayload); !errors.Is(err, ErrDecode) {
		t.Errorf("decoding a list payload as an entity: err = %v, want ErrDecode", err)
	}
}

func TestCodec_CorruptPayloadIsDecodeError(t *testing.T) {
	if _, err := DecodeEntity[model.Film]([]byte("definitely not msgpack")); !errors.Is(err, ErrDecode) {
		t.Errorf("corrupt payload: err = %v, want ErrDecode", err)
	}
}
