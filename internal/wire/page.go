package wire

import (
	"fmt"
	"net/url"
	"strconv"
)

// Hidden form fields posted by the player.
const (
	FieldCommand        = "hidCommand"
	FieldCommandData    = "hidCommandData"
	FieldAttemptID      = "hidAttemptId"
	FieldDataModel      = "hidDataModel"
	FieldObjectiveIDMap = "hidObjectiveIdMap"
)

// Fields of the page the LMS returns into the hidden frame.
const (
	FieldActivityID   = "hidActivityId"
	FieldView         = "hidView"
	FieldRteRequired  = "hidRteRequired"
	FieldRteVersion   = "hidRteVersion"
	FieldNavValidity  = "hidNavValidity"
	FieldContentURL   = "hidContentUrl"
	FieldShowNext     = "hidShowNext"
	FieldShowPrevious = "hidShowPrevious"
	FieldClose        = "hidClose"
	FieldError        = "hidError"
)

// PostFields is the hidden form the player submits. DataModel and ObjectiveIDMap are only
// sent in Execute view.
type PostFields struct {
	Command        string `form:"hidCommand"`
	CommandData    string `form:"hidCommandData"`
	AttemptID      string `form:"hidAttemptId"`
	DataModel      string `form:"hidDataModel"`
	ObjectiveIDMap string `form:"hidObjectiveIdMap"`
	IncludeModel   bool   `form:"-"`
}

func (p PostFields) Values() url.Values {
	v := url.Values{}
	v.Set(FieldCommand, p.Command)
	v.Set(FieldCommandData, p.CommandData)
	v.Set(FieldAttemptID, p.AttemptID)
	if p.IncludeModel {
		v.Set(FieldDataModel, p.DataModel)
		v.Set(FieldObjectiveIDMap, p.ObjectiveIDMap)
	}
	return v
}

// Page is the LMS answer to a post: the activity to show and its state.
type Page struct {
	ActivityID   string
	AttemptID    string
	View         string
	RteRequired  bool
	RteVersion   string
	DataModel    string
	NavValidity  string
	ContentURL   string
	ShowNext     bool
	ShowPrevious bool
	Close        bool
	Error        string
}

func (p Page) Values() url.Values {
	v := url.Values{}
	v.Set(FieldActivityID, p.ActivityID)
	v.Set(FieldAttemptID, p.AttemptID)
	v.Set(FieldView, p.View)
	v.Set(FieldRteRequired, strconv.FormatBool(p.RteRequired))
	v.Set(FieldRteVersion, p.RteVersion)
	v.Set(FieldDataModel, p.DataModel)
	v.Set(FieldNavValidity, p.NavValidity)
	v.Set(FieldContentURL, p.ContentURL)
	v.Set(FieldShowNext, strconv.FormatBool(p.ShowNext))
	v.Set(FieldShowPrevious, strconv.FormatBool(p.ShowPrevious))
	v.Set(FieldClose, strconv.FormatBool(p.Close))
	if p.Error != "" {
		v.Set(FieldError, p.Error)
	}
	return v
}

// Encode renders the page as a form-urlencoded body.
func (p Page) Encode() string {
	return p.Values().Encode()
}

// ParsePage reads a page body produced by Encode.
func ParsePage(body string) (Page, error) {
	v, err := url.ParseQuery(body)
	if err != nil {
		return Page{}, fmt.Errorf("%w: page: %v", ErrMalformed, err)
	}
	p := Page{
		ActivityID:  v.Get(FieldActivityID),
		AttemptID:   v.Get(FieldAttemptID),
		View:        v.Get(FieldView),
		RteVersion:  v.Get(FieldRteVersion),
		DataModel:   v.Get(FieldDataModel),
		NavValidity: v.Get(FieldNavValidity),
		ContentURL:  v.Get(FieldContentURL),
		Error:       v.Get(FieldError),
	}
	flags := []struct {
		field string
		dst   *bool
	}{
		{FieldRteRequired, &p.RteRequired},
		{FieldShowNext, &p.ShowNext},
		{FieldShowPrevious, &p.ShowPrevious},
		{FieldClose, &p.Close},
	}
	for _, f := range flags {
		raw := v.Get(f.field)
		if raw == "" {
			continue
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return Page{}, fmt.Errorf("%w: %s=%q", ErrMalformed, f.field, raw)
		}
		*f.dst = b
	}
	return p, nil
}
