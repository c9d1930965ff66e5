package config

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/wlin-papers/papercite/internal/meta"
	"github.com/wlin-papers/papercite/internal/year"
)

// Keys lists the settable config keys in display order.
var Keys = []string{
	"author_format",
	"n_authors",
	"fallback_year",
	"ocr_engine",
	"ocr_device",
	"ocr_server_url",
}

// Get returns the string value of a config key.
func (c *GlobalConfig) Get(key string) (string, error) {
	switch key {
	case "author_format":
		return c.AuthorFormat, nil
	case "n_authors":
		return strconv.Itoa(c.NAuthors), nil
	case "fallback_year":
		return strconv.Itoa(c.FallbackYear), nil
	case "ocr_engine":
		return c.OCREngine, nil
	case "ocr_device":
		return c.OCRDevice, nil
	case "ocr_server_url":
		return c.OCRServerURL, nil
	}
	return "", unknownKeyError(key)
}

// Set validates and assigns a config key. It does not persist; call
// SaveGlobalConfig afterwards.
func (c *GlobalConfig) Set(key, value string) error {
	switch key {
	case "author_format":
		f, err := meta.ParseAuthorFormat(value)
		if err != nil {
			return err
		}
		c.AuthorFormat = string(f)
		return nil

	case "n_authors":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("n_authors must be a positive integer, got %q", value)
		}
		c.NAuthors = n
		return nil

	case "fallback_year":
		y, err := strconv.Atoi(value)
		if err != nil || y < year.MinYear || y > year.MaxYear {
			return fmt.Errorf("fallback_year must be a year between %d and %d, got %q",
				year.MinYear, year.MaxYear, value)
		}
		c.FallbackYear = y
		return nil

	case "ocr_engine":
		c.OCREngine = value
		return nil

	case "ocr_device":
		switch value {
		case "auto", "cpu", "gpu":
			c.OCRDevice = value
			return nil
		}
		return fmt.Errorf("ocr_device must be auto, cpu or gpu, got %q", value)

	case "ocr_server_url":
		c.OCRServerURL = value
		return nil
	}
	return unknownKeyError(key)
}

// All returns every key/value pair, sorted by key.
func (c *GlobalConfig) All() map[string]string {
	out := make(map[string]string, len(Keys))
	for _, key := range Keys {
		value, _ := c.Get(key)
		out[key] = value
	}
	return out
}

func unknownKeyError(key string) error {
	keys := append([]string(nil), Keys...)
	sort.Strings(keys)
	return fmt.Errorf("unknown config key %q (valid keys: %v)", key, keys)
}
