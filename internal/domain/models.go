package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Domain contains the response shapes of the dog image API.
//
// Every body is wrapped in the same envelope, {"message": ..., "status": ...}.
// Unknown members are ignored when decoding; a member of the wrong JSON type
// fails the decode.

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope is the generic {message, status} wrapper with the message left undecoded.
type Envelope struct {
	Message json.RawMessage `json:"message"`
	Status  string          `json:"status"`
}

// RandomImageResponse maps GET /breeds/image/random and /breed/{breed}/images/random.
type RandomImageResponse struct {
	ImageURL string `json:"message"`
	Status   string `json:"status"`
}

// BreedImagesResponse maps endpoints returning a list of image URLs.
type BreedImagesResponse struct {
	Images []string `json:"message"`
	Status string   `json:"status"`
}

// BreedListResponse maps GET /breeds/list/all. Sub-breed lists may be empty.
type BreedListResponse struct {
	Breeds map[string][]string `json:"message"`
	Status string              `json:"status"`
}

// MessageString decodes the message member as a string.
func (e Envelope) MessageString() (string, error) {
	var s string
	if err := decodeMessage(e.Message, &s); err != nil {
		return "", err
	}
	return s, nil
}

// MessageList decodes the message member as a list of strings.
func (e Envelope) MessageList() ([]string, error) {
	var list []string
	if err := decodeMessage(e.Message, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// MessageMap decodes the message member as a breed to sub-breeds mapping.
func (e Envelope) MessageMap() (map[string][]string, error) {
	var m map[string][]string
	if err := decodeMessage(e.Message, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func decodeMessage(raw json.RawMessage, dst any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return errors.New("message is missing")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode message: %w", err)
	}
	return nil
}

// ValidateStatus checks that status is one of the two documented values.
func ValidateStatus(status string) error {
	switch status {
	case StatusSuccess, StatusError:
		return nil
	default:
		return fmt.Errorf("unexpected status %q", status)
	}
}

// ValidateBreedName checks that a breed or sub-breed name is non-empty, lowercase and has no whitespace.
func ValidateBreedName(name string) error {
	if name == "" {
		return errors.New("breed name is empty")
	}
	if name != strings.ToLower(name) {
		return fmt.Errorf("breed name %q is not lowercase", name)
	}
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return fmt.Errorf("breed name %q contains whitespace", name)
	}
	return nil
}

// Validate checks the response invariants.
func (r RandomImageResponse) Validate() error {
	if err := ValidateStatus(r.Status); err != nil {
		return err
	}
	if r.Status == StatusSuccess && strings.TrimSpace(r.ImageURL) == "" {
		return errors.New("successful response has an empty image url")
	}
	return nil
}

// Validate checks the response invariants.
func (r BreedImagesResponse) Validate() error {
	if err := ValidateStatus(r.Status); err != nil {
		return err
	}
	if r.Status != StatusSuccess {
		return nil
	}
	if len(r.Images) == 0 {
		return errors.New("successful response has no images")
	}
	for i, img := range r.Images {
		if strings.TrimSpace(img) == "" {
			return fmt.Errorf("image[%d] is empty", i)
		}
	}
	return nil
}

// Validate checks the response invariants, including breed and sub-breed naming.
func (r BreedListResponse) Validate() error {
	if err := ValidateStatus(r.Status); err != nil {
		return err
	}
	if r.Status != StatusSuccess {
		return nil
	}
	if len(r.Breeds) == 0 {
		return errors.New("successful response has no breeds")
	}
	var errs []error
	for breed, subs := range r.Breeds {
		if err := ValidateBreedName(breed); err != nil {
			errs = append(errs, err)
		}
		for _, sub := range subs {
			if err := ValidateBreedName(sub); err != nil {
				errs = append(errs, fmt.Errorf("breed %q: %w", breed, err))
			}
		}
	}
	return errors.Join(errs...)
}

// BreedNames returns the breed keys of the listing.
func (r BreedListResponse) BreedNames() []string {
	out := make([]string, 0, len(r.Breeds))
	for b := range r.Breeds {
		out = append(out, b)
	}
	return out
}
