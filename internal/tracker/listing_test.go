package tracker

import (
	"errors"
	"testing"
)

func TestDecodeListingsEnvelope(t *testing.T) {
	body := []byte(`{"data":[
		{"attributes":{"name":"Movie 2020 1080p REMUX","size":53687091200,"seeders":12,"leechers":"3","freeleech":"50%","type":"REMUX"}},
		{"attributes":{"name":"Movie 2020 WEB-DL","size":"1024","seeders":-4,"leechers":0,"freeleech":true,"type":null}},
		{"attributes":{"size":10}},
		{"id":5},
		"garbage"
	]}`)

	listings, skipped, err := decodeListings(body)
	if err != nil {
		t.Fatalf("decodeListings returned error: %v", err)
	}
	if len(listings) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(listings))
	}
	first := listings[0]
	if first.Name != "Movie 2020 1080p REMUX" || first.SizeBytes != 53687091200 || first.Seeders != 12 || first.Leechers != 3 {
		t.Fatalf("unexpected first listing: %#v", first)
	}
	if first.Freeleech != "50%" || first.Type != "REMUX" {
		t.Fatalf("unexpected freeleech/type: %#v", first)
	}
	second := listings[1]
	if second.SizeBytes != 1024 || second.Seeders != 0 || second.Freeleech != "Yes" || second.Type != "" {
		t.Fatalf("unexpected second listing: %#v", second)
	}
	if len(skipped) != 3 {
		t.Fatalf("expected 3 skipped records, got %#v", skipped)
	}
	if skipped[0].Index != 2 || skipped[0].Reason != "missing name" {
		t.Fatalf("unexpected skip record: %#v", skipped[0])
	}
	if skipped[1].Reason != "missing attributes" {
		t.Fatalf("unexpected skip record: %#v", skipped[1])
	}
}

func TestDecodeListingsEmptyData(t *testing.T) {
	for _, body := range []string{`{}`, `{"data":null}`, `{"data":[]}`, `{"meta":{"total":0}}`} {
		listings, skipped, err := decodeListings([]byte(body))
		if err != nil {
			t.Fatalf("%s: unexpected error %v", body, err)
		}
		if len(listings) != 0 || len(skipped) != 0 {
			t.Fatalf("%s: expected no listings, got %#v %#v", body, listings, skipped)
		}
	}
}

func TestDecodeListingsRejectsMalformedBodies(t *testing.T) {
	cases := map[string]error{
		`[1,2,3]`:          errNotObject,
		`"text"`:           errNotObject,
		`null`:             errNotObject,
		`{"data":"oops"}`:  errDataShape,
		`{"data":{"a":1}}`: errDataShape,
	}
	for body, want := range cases {
		_, _, err := decodeListings([]byte(body))
		if !errors.Is(err, want) {
			t.Fatalf("%s: expected %v, got %v", body, want, err)
		}
	}
	if _, _, err := decodeListings([]byte(`<html>Bad Gateway</html>`)); err == nil {
		t.Fatal("expected error for non-JSON body")
	}
}

func TestFreeleechNormalisation(t *testing.T) {
	cases := map[string]Freeleech{
		`"100%"`: "100%",
		`" 25% "`: "25%",
		`true`:   "Yes",
		`false`:  "No",
		`75`:     "75%",
		`0`:      "0%",
		`null`:   "",
	}
	for raw, want := range cases {
		var got Freeleech
		if err := got.UnmarshalJSON([]byte(raw)); err != nil {
			t.Fatalf("%s: unexpected error %v", raw, err)
		}
		if got != want {
			t.Fatalf("%s: expected %q, got %q", raw, want, got)
		}
	}
}
