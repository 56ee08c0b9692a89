package handler

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 100
)

// optionalNullableString tells an absent field apart from an explicit null.
type optionalNullableString struct {
	Set   bool
	Value *string
}

func (o *optionalNullableString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}

	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	o.Value = &value
	return nil
}

func parseDateParam(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseTimeParam(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseIntParam(value string, fallback int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, fmt.Errorf("invalid int")
	}
	return parsed, nil
}

type pagination struct {
	Limit  int
	Offset int
}

func parsePagination(limitValue, offsetValue string) (pagination, error) {
	limit, err := parseIntParam(limitValue, defaultPageLimit)
	if err != nil {
		return pagination{}, fmt.Errorf("limit: %w", err)
	}
	offset, err := parseIntParam(offsetValue, 0)
	if err != nil {
		return pagination{}, fmt.Errorf("offset: %w", err)
	}
	switch {
	case limit == 0:
		limit = defaultPageLimit
	case limit > maxPageLimit:
		limit = maxPageLimit
	}
	return pagination{Limit: limit, Offset: offset}, nil
}
