package client

import (
	"bytes"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/klauspost/compress/gzip"

	"github.com/chestorix/hawkmon/internal/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// metricHeader - тело записи Hawkular: [{"id": ..., "data": [...]}].
type metricHeader struct {
	ID   string             `json:"id"`
	Data []models.DataPoint `json:"data"`
}

// errorBody покрывает ответы Hawkular ({"errorMsg"}) и Mohawk ({"error","message"}).
type errorBody struct {
	ErrorMsg string `json:"errorMsg"`
	Error    string `json:"error"`
	Message  string `json:"message"`
}

func encodeWrite(name string, points []models.DataPoint) ([]byte, error) {
	return json.Marshal([]metricHeader{{ID: name, Data: points}})
}

func gzipBody(data []byte) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(data); err != nil {
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return &buf, nil
}

// errorMessage извлекает текст ошибки из тела ответа, если это возможно.
func errorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		switch {
		case body.ErrorMsg != "":
			return body.ErrorMsg
		case body.Message != "":
			return body.Message
		case body.Error != "":
			return body.Error
		}
	}
	return string(bytes.TrimSpace(raw))
}
