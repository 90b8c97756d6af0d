package external

import (
	"bytes"

	"github.com/goccy/go-json"
)

// OpenMeteoResponse is the provider document as returned by the forecast endpoint.
// Its shape is owned by Open-Meteo: the body is kept verbatim, and its decoded fields hold numbers as json.Number.
type OpenMeteoResponse struct {
	raw    []byte
	fields map[string]any
}

func (r *OpenMeteoResponse) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*r = OpenMeteoResponse{}
		return nil
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var fields map[string]any
	if err := decoder.Decode(&fields); err != nil {
		return err
	}

	r.raw = append([]byte(nil), data...)
	r.fields = fields
	return nil
}

// Raw returns the document exactly as the provider sent it, after charset conversion.
func (r OpenMeteoResponse) Raw() []byte {
	return r.raw
}

// Fields returns the decoded top-level object. Callers must not modify it.
func (r OpenMeteoResponse) Fields() map[string]any {
	return r.fields
}

// IsEmpty reports a missing, null or {} document.
func (r OpenMeteoResponse) IsEmpty() bool {
	return len(r.fields) == 0
}

// APIErrorResponse represents error responses from the Open-Meteo API
type APIErrorResponse struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}
