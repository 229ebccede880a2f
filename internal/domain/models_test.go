package domain

import (
	"encoding/json"
	"testing"
)

func TestBreedImagesResponseIgnoresUnknownFields(t *testing.T) {
	var resp BreedImagesResponse
	body := `{"message":["https://images.dog.ceo/breeds/beagle/a.jpg"],"status":"success","code":200}`
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Images) != 1 || resp.Status != StatusSuccess {
		t.Fatalf("unexpected response %#v", resp)
	}
	if err := resp.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestBreedImagesResponseFailsOnTypeMismatch(t *testing.T) {
	var resp BreedImagesResponse
	body := `{"message":"Breed not found (master breed does not exist)","status":"error","code":404}`
	if err := json.Unmarshal([]byte(body), &resp); err == nil {
		t.Fatalf("expected error decoding string message into a list")
	}
}

func TestBreedListResponseValidate(t *testing.T) {
	ok := BreedListResponse{
		Status: StatusSuccess,
		Breeds: map[string][]string{"beagle": {}, "terrier": {"irish", "yorkshire"}},
	}
	if err := ok.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	bad := BreedListResponse{
		Status: StatusSuccess,
		Breeds: map[string][]string{"Great Dane": {}, "hound": {"Afghan"}},
	}
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected naming errors")
	}

	empty := BreedListResponse{Status: StatusSuccess}
	if err := empty.Validate(); err == nil {
		t.Fatalf("expected error for empty successful listing")
	}
}

func TestRandomImageResponseValidate(t *testing.T) {
	if err := (RandomImageResponse{Status: "maybe"}).Validate(); err == nil {
		t.Fatalf("expected status error")
	}
	if err := (RandomImageResponse{Status: StatusSuccess}).Validate(); err == nil {
		t.Fatalf("expected empty url error")
	}
	if err := (RandomImageResponse{Status: StatusError}).Validate(); err != nil {
		t.Fatalf("error responses carry no payload requirement: %v", err)
	}
}

func TestEnvelopeMessageShapes(t *testing.T) {
	var env Envelope
	if err := json.Unmarshal([]byte(`{"message":{"hound":["afghan"]},"status":"success"}`), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	m, err := env.MessageMap()
	if err != nil || len(m["hound"]) != 1 {
		t.Fatalf("MessageMap = %v, %v", m, err)
	}
	if _, err := env.MessageString(); err == nil {
		t.Fatalf("expected error decoding object as string")
	}
	if _, err := (Envelope{}).MessageList(); err == nil {
		t.Fatalf("expected error for missing message")
	}
}
