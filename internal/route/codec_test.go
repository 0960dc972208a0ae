package route

import "testing"

func TestIntCodecDecode(t *testing.T) {
	tests := []struct {
		name    string
		min     int64
		raw     string
		want    int64
		wantErr bool
	}{
		{name: "simple", min: 1, raw: "42", want: 42},
		{name: "at minimum", min: 1, raw: "1", want: 1},
		{name: "zero below minimum", min: 1, raw: "0", wantErr: true},
		{name: "negative", min: 1, raw: "-7", wantErr: true},
		{name: "not a number", min: 1, raw: "new", wantErr: true},
		{name: "trailing junk", min: 1, raw: "42x", wantErr: true},
		{name: "empty", min: 1, raw: "", wantErr: true},
		{name: "unbounded negative ok", min: -100, raw: "-7", want: -7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IntCodec{Min: tt.min}.Decode(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Decode(%q) = %v, want error", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode(%q): %v", tt.raw, err)
			}
			if got.(int64) != tt.want {
				t.Fatalf("Decode(%q) = %v, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestEnumCodec(t *testing.T) {
	c := EnumCodec{Values: []string{"node", "way", "relation"}}

	for _, v := range c.Values {
		got, err := c.Decode(v)
		if err != nil {
			t.Fatalf("Decode(%q): %v", v, err)
		}
		if got != v {
			t.Fatalf("Decode(%q) = %v", v, got)
		}
	}
	if _, err := c.Decode("changeset"); err == nil {
		t.Fatal("Decode accepted a non-member")
	}
	if _, err := c.Decode(""); err == nil {
		t.Fatal("Decode accepted empty")
	}
	if _, err := c.Encode("nodes"); err == nil {
		t.Fatal("Encode accepted a non-member")
	}
}

func TestQueryTextCodecNormalizes(t *testing.T) {
	c := QueryTextCodec{}

	// "e" + combining acute composes to the single rune under NFC.
	got, err := c.Decode("  café ")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.(string) != "café" {
		t.Fatalf("Decode = %q, want composed form", got)
	}
	if _, err := c.Decode("   "); err == nil {
		t.Fatal("Decode accepted whitespace-only text")
	}
}

func TestMapCenterCodecAtomicValidation(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want MapCenter
		bad  bool
	}{
		{name: "valid", raw: "15/51.5/-0.1", want: MapCenter{Zoom: 15, Lat: 51.5, Lon: -0.1}},
		{name: "zero zoom", raw: "0/0/0", want: MapCenter{}},
		{name: "negative zoom", raw: "-1/51.5/-0.1", bad: true},
		{name: "latitude over range", raw: "15/90.1/-0.1", bad: true},
		{name: "longitude over range", raw: "15/51.5/180.5", bad: true},
		{name: "partial validity rejected", raw: "15/51.5/not-a-number", bad: true},
		{name: "missing component", raw: "15/51.5", bad: true},
		{name: "extra component", raw: "15/51.5/-0.1/9", bad: true},
	}
	c := MapCenterCodec{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Decode(tt.raw)
			if tt.bad {
				if err == nil {
					t.Fatalf("Decode(%q) = %v, want error", tt.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode(%q): %v", tt.raw, err)
			}
			if got.(MapCenter) != tt.want {
				t.Fatalf("Decode(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestMapCenterRoundTrip(t *testing.T) {
	c := MapCenterCodec{}
	values := []string{"15/51.5/-0.1", "0/0/0", "19/-33.85700/151.21500", "3/89.99999/-179.99999"}
	for _, raw := range values {
		v, err := c.Decode(raw)
		if err != nil {
			t.Fatalf("Decode(%q): %v", raw, err)
		}
		encoded, err := c.Encode(v)
		if err != nil {
			t.Fatalf("Encode(%+v): %v", v, err)
		}
		again, err := c.Decode(encoded)
		if err != nil {
			t.Fatalf("Decode(Encode) of %q: %v", raw, err)
		}
		if again != v {
			t.Fatalf("round trip of %q: %+v != %+v", raw, again, v)
		}
	}
}

func TestBBoxCodec(t *testing.T) {
	c := BBoxCodec{}

	v, err := c.Decode("-0.2,51.4,0.1,51.6")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	b := v.(BBox)
	if b.MinLon != -0.2 || b.MaxLat != 51.6 {
		t.Fatalf("Decode = %+v", b)
	}

	bad := []string{
		"-0.2,51.4,0.1",         // missing component
		"0.1,51.4,-0.2,51.6",    // min > max
		"-200,51.4,0.1,51.6",    // longitude out of range
		"-0.2,51.4,0.1,91",      // latitude out of range
		"-0.2,51.4,0.1,abc",     // partial validity
	}
	for _, raw := range bad {
		if _, err := c.Decode(raw); err == nil {
			t.Fatalf("Decode(%q) accepted invalid bbox", raw)
		}
	}

	encoded, err := c.Encode(b)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	again, err := c.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode(Encode): %v", err)
	}
	if again.(BBox) != b {
		t.Fatalf("round trip: %+v != %+v", again, b)
	}
}
