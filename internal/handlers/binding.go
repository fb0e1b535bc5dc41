package handlers

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/httperr"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/store"
	"github.com/Vlad4est/Proiect-InfoWorld-internship2025/internal/validators"
)

// bind validates the JSON body against schema and decodes it into req.
// It writes the error response and returns false on failure.
func bind(c *gin.Context, schema validators.Schema, req any) bool {
	raw, err := c.GetRawData()
	if err != nil {
		httperr.BadRequest(c, httperr.KindValidation, "Could not read request body")
		return false
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		raw = []byte("{}")
	}

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		httperr.BadRequest(c, httperr.KindValidation, "Request body must be a JSON object")
		return false
	}

	if err := schema.Validate(body); err != nil {
		httperr.FromError(c, err)
		return false
	}

	if err := json.Unmarshal(raw, req); err != nil {
		httperr.BadRequest(c, httperr.KindValidation, "Invalid request body")
		return false
	}
	return true
}

// paramID parses a positive integer path parameter.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		httperr.BadRequest(c, httperr.KindValidation, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// queryID parses an optional positive integer query parameter; absent is 0.
func queryID(c *gin.Context, name string) (int64, bool) {
	v := strings.TrimSpace(c.Query(name))
	if v == "" {
		return 0, true
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		httperr.BadRequest(c, httperr.KindValidation, "Invalid "+name)
		return 0, false
	}
	return id, true
}

// queryBool parses "true"/"false"; anything else means unset.
func queryBool(c *gin.Context, name string) *bool {
	switch strings.TrimSpace(c.Query(name)) {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	}
	return nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

// queryDuration reads the optional ?duration= slot length in minutes.
func queryDuration(c *gin.Context) (int, bool) {
	v := strings.TrimSpace(c.Query("duration"))
	if v == "" {
		return 0, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		httperr.FromError(c, httperr.Validation([]string{"duration must be a number of minutes"}))
		return 0, false
	}
	return n, true
}

type setActiveRequest struct {
	Active bool `json:"active"`
}

// notFound gives store.ErrNotFound a resource specific message.
func notFound(err error, msg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return httperr.New(httperr.KindNotFound, msg)
	}
	return err
}
