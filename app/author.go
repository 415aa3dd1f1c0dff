package app

import (
	"encoding/json"
	"errors"

	"github.com/sidrapp/sidr-be/model"
)

var UnknownAuthorTypeErr = errors.New("unknown author type")

// AuthorRef is the JSON form of model.Author: {"type": "charityPage", "id": "..."}.
type AuthorRef struct {
	model.Author
}

func (ar *AuthorRef) UnmarshalJSON(data []byte) error {
	if ar == nil {
		return nil
	}
	var raw struct {
		Type model.AuthorType `json:"type"`
		Id   string           `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.Type {
	case model.AuthorTypeUser:
		ar.Author = model.UserAuthor(raw.Id)
	case model.AuthorTypeCharityPage:
		ar.Author = model.CharityPageAuthor(raw.Id)
	default:
		return UnknownAuthorTypeErr
	}
	return nil
}

func (ar AuthorRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		"type": string(ar.Type),
		"id":   ar.Id,
	})
}
