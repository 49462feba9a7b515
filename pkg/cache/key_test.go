package cache

import (
	"net/url"
	"testing"
)

func TestKey_String(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		want string
	}{
		{
			name: "endpoint without params",
			key: Key{
				Endpoint: "apod",
			},
			want: "nasa:apod",
		},
		{
			name: "endpoint with single param",
			key: Key{
				Endpoint: "mars",
				Params: url.Values{
					"rover": []string{"curiosity"},
				},
			},
			want: "nasa:mars:rover=curiosity",
		},
		{
			name: "endpoint with multiple params (sorted)",
			key: Key{
				Endpoint: "mars",
				Params: url.Values{
					"rover":      []string{"curiosity"},
					"earth_date": []string{"2020-07-01"},
				},
			},
			want: "nasa:mars:earth_date=2020-07-01&rover=curiosity",
		},
		{
			name: "endpoint with slashes trimmed",
			key: Key{
				Endpoint: "/epic/",
				Params: url.Values{
					"date": []string{"2019-05-30"},
				},
			},
			want: "nasa:epic:date=2019-05-30",
		},
		{
			name: "neo date range",
			key: Key{
				Endpoint: "neo",
				Params: url.Values{
					"start_date": []string{"2024-01-01"},
					"end_date":   []string{"2024-01-07"},
				},
			},
			want: "nasa:neo:end_date=2024-01-07&start_date=2024-01-01",
		},
		{
			name: "repeated parameter values preserved",
			key: Key{
				Endpoint: "apod",
				Params: url.Values{
					"x": []string{"1", "2"},
				},
			},
			want: "nasa:apod:x=1&x=2",
		},
		{
			name: "separator characters escaped",
			key: Key{
				Endpoint: "apod",
				Params: url.Values{
					"a": []string{"1:b=2"},
				},
			},
			want: "nasa:apod:a=1%3Ab%3D2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.key.String()
			if got != tt.want {
				t.Errorf("Key.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestKey_OrderIndependence verifies that logically identical parameter sets
// produce identical keys regardless of insertion order.
func TestKey_OrderIndependence(t *testing.T) {
	p1 := url.Values{}
	p1.Set("rover", "perseverance")
	p1.Set("camera", "NAVCAM")
	p1.Set("earth_date", "2023-03-15")

	p2 := url.Values{}
	p2.Set("earth_date", "2023-03-15")
	p2.Set("camera", "NAVCAM")
	p2.Set("rover", "perseverance")

	k1 := Key{Endpoint: "mars", Params: p1}
	k2 := Key{Endpoint: "mars", Params: p2}

	if k1.String() != k2.String() {
		t.Errorf("keys differ for identical param sets: %q vs %q", k1.String(), k2.String())
	}
}

// TestKey_ValueSensitivity verifies that changing any parameter value
// changes the key.
func TestKey_ValueSensitivity(t *testing.T) {
	base := Key{
		Endpoint: "mars",
		Params: url.Values{
			"rover":      []string{"curiosity"},
			"earth_date": []string{"2020-07-01"},
		},
	}

	changed := Key{
		Endpoint: "mars",
		Params: url.Values{
			"rover":      []string{"curiosity"},
			"earth_date": []string{"2020-07-02"},
		},
	}

	if base.String() == changed.String() {
		t.Errorf("keys should differ when a parameter value changes: %q", base.String())
	}

	otherEndpoint := Key{Endpoint: "epic", Params: base.Params}
	if base.String() == otherEndpoint.String() {
		t.Errorf("keys should differ across endpoints: %q", base.String())
	}
}

// TestKey_Injectivity verifies that distinct parameter sets never share a
// key, including repeated values and values containing the separator
// characters.
func TestKey_Injectivity(t *testing.T) {
	pairs := []struct {
		name string
		p1   url.Values
		p2   url.Values
	}{
		{
			name: "repeated value vs single value",
			p1:   url.Values{"x": []string{"1"}},
			p2:   url.Values{"x": []string{"1", "2"}},
		},
		{
			name: "separators inside a value",
			p1:   url.Values{"a": []string{"1"}, "b": []string{"2"}},
			p2:   url.Values{"a": []string{"1:b=2"}},
		},
		{
			name: "value shifted between params",
			p1:   url.Values{"a": []string{"1&b=2"}},
			p2:   url.Values{"a": []string{"1"}, "b": []string{"2"}},
		},
	}

	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			k1 := Key{Endpoint: "apod", Params: tt.p1}
			k2 := Key{Endpoint: "apod", Params: tt.p2}
			if k1.String() == k2.String() {
				t.Errorf("distinct parameter sets share key %q", k1.String())
			}
		})
	}
}
