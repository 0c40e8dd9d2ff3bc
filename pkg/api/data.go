package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/mitchellh/mapstructure"
)

type JSON map[string]any

func (j JSON) ToReader() (io.Reader, string, error) {
	b, err := json.Marshal(j)
	if err != nil {
		return nil, "", err
	}

	return bytes.NewBuffer(b), "application/json", nil
}

// Decode copies the body into out, matching keys with json tags.
func (m JSON) Decode(out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(map[string]any(m))
}

func bytesToJSON(body []byte) (JSON, error) {
	result := JSON{}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}

	return result, nil
}

type Response struct {
	Code    int
	Header  http.Header
	Body    JSON
	RawBody []byte
}

func (r *Response) IsSuccess() bool {
	return r.Code >= 200 && r.Code < 300
}
