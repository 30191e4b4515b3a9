package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// LogoCollection is the document collection holding client logos
const LogoCollection = "logo"

// Logo represents a client logo shown on the portfolio page
type Logo struct {
	Name     string  `json:"name"`
	ImageURL string  `json:"image_url"`
	LinkURL  *string `json:"link_url,omitempty"`
}

// Validate checks required fields and URL shapes
func (l *Logo) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if err := ValidateHTTPURL(l.ImageURL); err != nil {
		return fmt.Errorf("%w: image_url: %v", ErrValidation, err)
	}
	if l.LinkURL != nil {
		if err := ValidateHTTPURL(*l.LinkURL); err != nil {
			return fmt.Errorf("%w: link_url: %v", ErrValidation, err)
		}
	}
	return nil
}

// Document converts the logo into a storable document
func (l *Logo) Document() map[string]interface{} {
	doc := map[string]interface{}{
		"name":      l.Name,
		"image_url": l.ImageURL,
		"link_url":  nil,
	}
	if l.LinkURL != nil {
		doc["link_url"] = *l.LinkURL
	}
	return doc
}

// ValidateHTTPURL accepts absolute http(s) URLs with a host
func ValidateHTTPURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("empty URL")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL scheme should be 'http' or 'https'")
	}
	if u.Host == "" {
		return fmt.Errorf("invalid URL: no host found")
	}
	return nil
}
