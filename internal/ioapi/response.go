package ioapi

import (
	"log/slog"
	"net/http"

	"github.com/gnames/gnfmt"
)

// Messages returned to API callers.
const (
	MsgOK         = "OK"
	MsgNoFilter   = "Bad request - Please check that you have at least provided a year(s), sector(s), or stressor(s)."
	MsgEmpty      = "Bad request - Please check that your query is correctly entered."
	MsgBadYear    = "Bad request - The year must be an integer, for example year=2019."
	MsgBadRegion  = "Bad request - Please check you have provided the correct two-letter region code."
	MsgNotFound   = "Not found. The URL is not valid, please verify the URL is correct."
	MsgNotAllowed = "Method not allowed. The API is read-only."
	MsgInternal   = "Internal server error. Please try again later."
)

// Response is the envelope of every API answer. Status always equals
// the HTTP status code.
type Response struct {
	Status  int    `json:"status"`
	Result  any    `json:"result"`
	Message string `json:"message"`
}

var enc = gnfmt.GNjson{Pretty: true}

func writeResponse(w http.ResponseWriter, status int, result any, msg string) {
	body, err := enc.Encode(Response{Status: status, Result: result, Message: msg})
	if err != nil {
		slog.Error("Cannot encode response", "error", err)
		status = http.StatusInternalServerError
		body = []byte(`{"status":500,"result":null,"message":"` + MsgInternal + `"}`)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeOK(w http.ResponseWriter, result any) {
	writeResponse(w, http.StatusOK, result, MsgOK)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeResponse(w, status, nil, msg)
}
